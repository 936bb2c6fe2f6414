package cmd

import "time"

type Config struct {
	HTTPPort                    string
	DBHost                      string
	DBPort                      string
	DBUser                      string
	DBPassword                  string
	DBName                      string
	DBSslMode                   string
	KafkaHost                   string
	KafkaOrderStageChangedTopic string
	InventoryServiceURL         string
	ProductionServiceURL        string
	InventoryRefreshSpec        string
	OutboundTimeout             time.Duration
	DailyLimitHours             float64
}
