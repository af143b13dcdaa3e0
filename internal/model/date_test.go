package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC is already the next morning in Tokyo
	instant := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-09", DateOf(instant).String())
	assert.Equal(t, "2024-03-10", DateOf(instant.In(tokyo)).String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2023, Month: time.December, Day: 31}

	assert.Equal(t, "2024-01-01", d.AddDays(1).String())
	assert.Equal(t, "2023-11-30", d.AddDays(-31).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.False(t, d.Before(d))
	assert.True(t, Date{}.IsZero())
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	out, err := json.Marshal(wrapper{Date: Date{Year: 2024, Month: time.May, Day: 7}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-07"}`, string(out))

	var in wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-05-08"}`), &in))
	assert.Equal(t, 8, in.Date.Day)
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2024-05-07"))
	assert.Equal(t, "2024-05-07", d.String())

	require.NoError(t, d.Scan([]byte("2024-06-01")))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-07-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := Date{Year: 2024, Month: time.January, Day: 2}.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", v)
}
