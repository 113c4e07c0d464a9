package profiles

// UpdateInput is the profile patch payload; nil fields are left untouched.
// Email, password, and admin status are not editable here.
type UpdateInput struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Sex          *string `json:"sex" validate:"omitempty,max=50"`
	InterestedIn *string `json:"interestedIn" validate:"omitempty,max=50"`
	Location     *string `json:"location" validate:"omitempty,max=200"`
	HotTake      *string `json:"hotTake" validate:"omitempty,max=500"`
}

// InitialQuestionnaireInput is the onboarding payload. Completing it flips
// the has-completed flag.
type InitialQuestionnaireInput struct {
	Name                string   `json:"name" validate:"required,min=1,max=100"`
	Sex                 string   `json:"sex" validate:"required,max=50"`
	Location            string   `json:"location" validate:"required,max=200"`
	InterestedIn        string   `json:"interestedIn" validate:"required,max=50"`
	HotTake             string   `json:"hotTake" validate:"omitempty,max=500"`
	ImportantCategories []string `json:"importantCategories"`
}

// StatusDTO reports onboarding progress.
type StatusDTO struct {
	HasCompleted bool `json:"hasCompleted"`
}

// CompletionDTO reports questionnaire coverage over active questions.
type CompletionDTO struct {
	CompletionPercentage float64 `json:"completionPercentage"`
	AnsweredQuestions    int64   `json:"answeredQuestions"`
	TotalQuestions       int64   `json:"totalQuestions"`
}
