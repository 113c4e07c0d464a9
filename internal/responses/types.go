package responses

// MatchRange bounds the stances the responder accepts in a partner.
type MatchRange struct {
	Low  int `json:"low" validate:"gte=1,lte=5"`
	High int `json:"high" validate:"gte=1,lte=5"`
}

// SubmitInput is the decoded response payload. A nil UserResponse with a nil
// MatchResponse records a skip.
type SubmitInput struct {
	HotTakeID     string      `json:"hotTakeId" validate:"required,uuid4"`
	UserResponse  *int        `json:"userResponse" validate:"omitempty,gte=1,lte=5"`
	MatchResponse *MatchRange `json:"matchResponse"`
	IsDealbreaker bool        `json:"isDealbreaker"`
}

// SubmitResult acknowledges the write.
type SubmitResult struct {
	HotTakeID string `json:"hotTakeId"`
	Recorded  bool   `json:"recorded"`
}
