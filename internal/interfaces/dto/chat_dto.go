package dto

type ChatMessageRequest struct {
	CollectionName string `json:"collection_name" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

type ChatMessageResponse struct {
	Message string `json:"message"`
}
