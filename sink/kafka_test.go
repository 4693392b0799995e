package sink

import (
	"testing"
	"time"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRow(t *testing.T) {
	producedAt := time.Date(2026, 8, 31, 14, 5, 0, 0, time.UTC)
	row := dataset.YearRow{Region: "Canada", Year: 2010, Value: 34.0}

	msg, err := serializeRow("SP.POP.TOTL", row, producedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("SP.POP.TOTL|Canada|2010"), msg.Key)
	assert.JSONEq(t,
		`{"indicator":"SP.POP.TOTL","region":"Canada","year":2010,"value":34}`,
		string(msg.Value),
	)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "SP.POP.TOTL", headers["indicator"])
	assert.Equal(t, "2026-08-31T14:05:00Z", headers["produced_at"])
}
