package dto

type StatsResp struct {
	TotalUsers      int64  `json:"total_users"`
	TotalRecordings int64  `json:"total_recordings"`
	ActiveUsers30d  int64  `json:"active_users_30d"`
	ServerStatus    string `json:"server_status"`
	Version         string `json:"version"`
}

type HealthResp struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage"`
	Version  string `json:"version"`
}

type PingResp struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
