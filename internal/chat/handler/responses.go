package handler

import "nurture/internal/chat"

// ChatResponse is the HTTP response for POST /api/chat.
type ChatResponse struct {
	Response            string   `json:"response"`
	ResponseType        string   `json:"response_type"`
	SuggestedActivities []string `json:"suggested_activities,omitempty"`
	ReferralNeeded      bool     `json:"referral_needed"`
	State               string   `json:"state"`
}

// FromReply converts a responder reply to an HTTP response.
func FromReply(reply chat.Reply) *ChatResponse {
	return &ChatResponse{
		Response:            reply.Text,
		ResponseType:        string(reply.Type),
		SuggestedActivities: reply.Activities,
		ReferralNeeded:      reply.ReferralNeeded,
		State:               string(reply.State),
	}
}
