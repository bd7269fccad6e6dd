package dto

type UploadReq struct {
	SessionID   string `form:"session_id" validate:"required,max=128"`
	ChunkNumber string `form:"chunk_number" validate:"omitempty,numeric,max=9"`
}

type UploadResp struct {
	Filename    string `json:"filename"`
	SessionID   string `json:"session_id"`
	ChunkNumber int    `json:"chunk_number"`
	FileSize    int64  `json:"file_size"`
}

type VideoItem struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
	ChunkCount  int    `json:"chunk_count"`
	Date        string `json:"date"`
	CreatedAt   int64  `json:"created_at"`
}

type VideosResp struct {
	Videos []VideoItem `json:"videos"`
}

type ChunkItem struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	Order       int    `json:"order"`
	Size        int64  `json:"size"`
}

type DownloadResp struct {
	Chunks      []ChunkItem `json:"chunks"`
	TotalChunks int         `json:"total_chunks"`
	SessionID   string      `json:"session_id"`
}

type DeleteReq struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
}

type DeleteResp struct {
	Message string `json:"message"`
}

type StorageInfoResp struct {
	StorageUsed       int64   `json:"storage_used"`
	StorageLimit      int64   `json:"storage_limit"`
	StoragePercentage float64 `json:"storage_percentage"`
	VideoCount        int64   `json:"video_count"`
	SubscriptionTier  string  `json:"subscription_tier"`
}

type UpdateSubscriptionReq struct {
	SubscriptionTier string `json:"subscription_tier" validate:"max=32"`
	ProductID        string `json:"product_id" validate:"max=128"`
	TransactionJWS   string `json:"transaction_jws"`
	ExpiresAt        string `json:"expires_at" validate:"max=64"`
}

type UpdateSubscriptionResp struct {
	Tier         string  `json:"tier"`
	StorageLimit int64   `json:"storage_limit"`
	ExpiresAt    *string `json:"expires_at"`
}
