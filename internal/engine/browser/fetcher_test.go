package browser

import (
	"testing"
	"time"
)

func TestRunBudget(t *testing.T) {
	tests := []struct {
		name      string
		requested time.Duration
		settle    time.Duration
		render    time.Duration
		want      time.Duration
	}{
		{
			// Defaults: the 30s request is below settle+render+slack,
			// so the floor wins and the wait cannot expire the run
			name:      "default request raised to floor",
			requested: 30 * time.Second,
			settle:    5 * time.Second,
			render:    20 * time.Second,
			want:      35 * time.Second,
		},
		{
			name:      "zero request uses floor",
			requested: 0,
			settle:    5 * time.Second,
			render:    20 * time.Second,
			want:      35 * time.Second,
		},
		{
			name:      "small request raised to floor",
			requested: 10 * time.Second,
			settle:    5 * time.Second,
			render:    20 * time.Second,
			want:      35 * time.Second,
		},
		{
			name:      "generous request kept",
			requested: 2 * time.Minute,
			settle:    5 * time.Second,
			render:    20 * time.Second,
			want:      2 * time.Minute,
		},
		{
			name:      "long settle extends floor",
			requested: 30 * time.Second,
			settle:    15 * time.Second,
			render:    20 * time.Second,
			want:      45 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runBudget(tt.requested, tt.settle, tt.render)
			if got != tt.want {
				t.Errorf("runBudget(%v, %v, %v) = %v, want %v",
					tt.requested, tt.settle, tt.render, got, tt.want)
			}
		})
	}

	t.Run("floor always outlives the content wait", func(t *testing.T) {
		settle := 5 * time.Second
		render := 20 * time.Second
		if got := runBudget(0, settle, render); got <= settle+render {
			t.Errorf("budget %v does not outlive settle+render %v", got, settle+render)
		}
	})
}
