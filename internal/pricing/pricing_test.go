package pricing

import (
	"testing"

	"salon-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in       string
		amount   float64
		currency string
	}{
		{"SGD 56", 56, "SGD"},
		{"sgd 120 (member)", 120, "SGD"},
		{"from 45", 45, ""},
		{"Ask in store", 0, ""},
		{"", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			amount, currency := ParsePrice(tt.in)
			assert.Equal(t, tt.amount, amount)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 45, ParseDuration("45 mins"))
	assert.Equal(t, 60, ParseDuration("1 hr"))
	assert.Equal(t, 120, ParseDuration("2 hrs"))
	assert.Equal(t, 30, ParseDuration("30mins"))
	assert.Equal(t, 0, ParseDuration("half a day"))
	assert.Equal(t, 0, ParseDuration("90 minutes"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 mins", FormatDuration(45))
	assert.Equal(t, "1 hr", FormatDuration(60))
	assert.Equal(t, "1 hr 30 mins", FormatDuration(90))
	assert.Equal(t, "3 hrs 15 mins", FormatDuration(195))
	assert.Equal(t, "0 mins", FormatDuration(0))
}

func TestNewQuote(t *testing.T) {
	cut := entity.Service{ID: "1", Price: "SGD 56", Duration: "45 mins"}
	perm := entity.Service{ID: "4", Price: "SGD 120", Duration: "2 hrs"}
	broken := entity.Service{ID: "9", Price: "TBD", Duration: "a while"}
	for _, s := range []*entity.Service{&cut, &perm, &broken} {
		Normalize(s)
	}

	t.Run("no coupon", func(t *testing.T) {
		q := NewQuote([]entity.Service{cut}, nil)
		assert.Equal(t, 56.0, q.Subtotal)
		assert.Equal(t, 0.0, q.Discount)
		assert.Equal(t, 56.0, q.Total)
		assert.Equal(t, 45, q.TotalMinutes)
		assert.Equal(t, "SGD", q.Currency)
	})

	t.Run("malformed entries contribute zero", func(t *testing.T) {
		q := NewQuote([]entity.Service{cut, perm, broken}, nil)
		assert.Equal(t, 176.0, q.Subtotal)
		assert.Equal(t, 165, q.TotalMinutes)
	})

	t.Run("fixed coupon", func(t *testing.T) {
		c := &entity.Coupon{DiscountType: entity.DiscountTypeFixed, DiscountValue: 10}
		q := NewQuote([]entity.Service{cut}, c)
		assert.Equal(t, 10.0, q.Discount)
		assert.Equal(t, 46.0, q.Total)
	})

	t.Run("empty selection", func(t *testing.T) {
		q := NewQuote(nil, nil)
		assert.Zero(t, q.Subtotal)
		assert.Zero(t, q.Total)
		assert.Empty(t, q.Currency)
	})
}
