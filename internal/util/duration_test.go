package util_test

import (
	"testing"
	"time"

	"auth-web-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
		wantErr  bool
	}{
		{"секунды с суффиксом", "30s", 30 * time.Second, false},
		{"минуты", "15m", 15 * time.Minute, false},
		{"часы", "2h", 2 * time.Hour, false},
		{"дни", "7d", 7 * 24 * time.Hour, false},
		{"голое число — секунды", "900", 900 * time.Second, false},
		{"пробелы по краям", " 15m ", 15 * time.Minute, false},
		{"пустая строка", "", 0, true},
		{"неизвестная единица", "10w", 0, true},
		{"без числа", "m", 0, true},
		{"мусор", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := util.ParseDuration(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
