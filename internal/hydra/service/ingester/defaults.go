package ingester

import "time"

const (
	defaultInterval = 15 * time.Second
	defaultMaturity = 2000
)
