// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.readSync(resultOK)

	assert.Equal(t, 1.0, testutil.ToFloat64(m1.readSyncs.WithLabelValues(resultOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m2.readSyncs.WithLabelValues(resultOK)))
}

func TestMetrics_Gatherer(t *testing.T) {
	m := NewMetrics()
	m.writeSync(resultError)
	m.command(OutcomeFailed)
	m.cacheLookup(lookupMiss)

	expected := `
# HELP todosync_commands_total Submitted commands by reported outcome.
# TYPE todosync_commands_total counter
todosync_commands_total{outcome="failed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected), "todosync_commands_total"))

	count, err := testutil.GatherAndCount(m.Gatherer())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.readSync(resultOK)
	m.cacheWrite(resultOK)

	path := filepath.Join(t.TempDir(), "todosync.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `todosync_read_syncs_total{result="ok"} 1`)
	assert.Contains(t, string(data), `todosync_cache_writes_total{result="ok"} 1`)
}
