package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAggregate_Table(t *testing.T) {
	in := strings.NewReader(`[
		{"device":"ANDROID_PHONE","impressions":"10","clicks":"3"},
		{"device":"SMART_TV","impressions":"99"}
	]`)
	var out bytes.Buffer

	require.NoError(t, runAggregate(context.Background(), in, &out, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"DEVICE", "IMPRESSIONS", "CLICKS", "REQUESTS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"android", "10", "3", "8"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"tablet", "0", "0", "0"}, strings.Fields(lines[4]))
	assert.Contains(t, lines[5], "1 rows with unknown device skipped")
}

func TestRunAggregate_JSON(t *testing.T) {
	in := strings.NewReader(`{"rows":[{"device":"iPad","impressions":3},{"device":"iPhone","impressions":3}]}`)
	var out bytes.Buffer

	require.NoError(t, runAggregate(context.Background(), in, &out, true))

	var got reportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, bucketJSON{Impressions: 6, Clicks: 0, Requests: 4}, got.Devices.IOS)
	assert.NotNil(t, got.Locations)

	s := out.String()
	assert.Less(t, strings.Index(s, `"android"`), strings.Index(s, `"ios"`))
	assert.Less(t, strings.Index(s, `"desktop"`), strings.Index(s, `"tablet"`))
}

func TestRunAggregate_BadInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runAggregate(context.Background(), strings.NewReader(""), &out, false))
	assert.Error(t, runAggregate(context.Background(), strings.NewReader(`[{"device":`), &out, false))
}

func TestRunAggregate_NonStringDeviceSkipped(t *testing.T) {
	in := strings.NewReader(`[{"device":7,"impressions":50},{"device":"tablet","impressions":5}]`)
	var out bytes.Buffer

	require.NoError(t, runAggregate(context.Background(), in, &out, true))

	var got reportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, bucketJSON{Impressions: 5, Requests: 4}, got.Devices.Tablet)
	assert.Equal(t, bucketJSON{}, got.Devices.Android)
}
