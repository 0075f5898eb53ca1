package domain

// StatItem un indicador del dashboard tal como lo publica GET /dashboard/stats.
type StatItem struct {
	Title string `json:"title"`
	Value int64  `json:"value"`
	Type  string `json:"type"` // users | companies | salaries
}

// DashboardStats respuesta de GET /dashboard/stats.
type DashboardStats struct {
	DisplayStats []StatItem `json:"display_stats"`
}
