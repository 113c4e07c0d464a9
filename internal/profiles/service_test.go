package profiles

import (
	"context"
	"testing"

	"github.com/flagsapp/flags-backend/pkg/db/models"
	dbtypes "github.com/flagsapp/flags-backend/pkg/db/types"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
)

type fakeUserStore struct {
	user       *models.User
	getErr     error
	updateErr  error
	lastFields map[string]any
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserStore) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	f.lastFields = fields
	return f.updateErr
}

type fakeQuestionStore struct {
	questions []models.Question
	count     int64
}

func (f *fakeQuestionStore) ListActive(ctx context.Context) ([]models.Question, error) {
	return f.questions, nil
}

func (f *fakeQuestionStore) CountActive(ctx context.Context) (int64, error) {
	return f.count, nil
}

type fakeAnswerStore struct {
	answers []models.QuestionnaireAnswer
	count   int64
}

func (f *fakeAnswerStore) ListByUser(ctx context.Context, userID string) ([]models.QuestionnaireAnswer, error) {
	return f.answers, nil
}

func (f *fakeAnswerStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	return f.count, nil
}

func newTestService(t *testing.T, users *fakeUserStore, questions *fakeQuestionStore, answers *fakeAnswerStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:     users,
		QuestionRepo: questions,
		AnswerRepo:   answers,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func strPtr(s string) *string { return &s }

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing deps")
	}
}

func TestGetProfile(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1", Email: "a@b.c", Name: "Ada"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	dto, err := svc.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if dto.ID != "u1" || dto.Email != "a@b.c" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestUpdateProfileWhitelistsFields(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1", Name: "Ada"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateInput{
		Name:     strPtr("  Grace  "),
		Location: strPtr("Berlin"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if store.lastFields["name"] != "Grace" {
		t.Fatalf("name not trimmed: %v", store.lastFields["name"])
	}
	if store.lastFields["location"] != "Berlin" {
		t.Fatalf("location missing: %v", store.lastFields)
	}
	if _, ok := store.lastFields["email"]; ok {
		t.Fatal("email must not be updatable")
	}
	if len(store.lastFields) != 2 {
		t.Fatalf("unexpected field set: %v", store.lastFields)
	}
}

func TestUpdateProfileRejectsEmptyPatch(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateInput{})
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateInput{Name: strPtr("   ")})
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitInitialQuestionnaire(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	_, err := svc.SubmitInitialQuestionnaire(context.Background(), "u1", InitialQuestionnaireInput{
		Name:                "Ada",
		Sex:                 "female",
		Location:            "London",
		InterestedIn:        "male",
		ImportantCategories: []string{"Food & Cuisine"},
	})
	if err != nil {
		t.Fatalf("SubmitInitialQuestionnaire: %v", err)
	}
	if store.lastFields["has_completed_questionnaire"] != true {
		t.Fatal("completion flag not set")
	}
	cats, ok := store.lastFields["important_categories"].(dbtypes.StringArray)
	if !ok || len(cats) != 1 || cats[0] != "Food & Cuisine" {
		t.Fatalf("unexpected categories: %v", store.lastFields["important_categories"])
	}
}

func TestSubmitInitialQuestionnaireDefaultsCategories(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	_, err := svc.SubmitInitialQuestionnaire(context.Background(), "u1", InitialQuestionnaireInput{
		Name:         "Ada",
		Sex:          "female",
		Location:     "London",
		InterestedIn: "male",
	})
	if err != nil {
		t.Fatalf("SubmitInitialQuestionnaire: %v", err)
	}
	cats := store.lastFields["important_categories"].(dbtypes.StringArray)
	if len(cats) != 1 || cats[0] != "No Category" {
		t.Fatalf("expected default category, got %v", cats)
	}
}

func TestSubmitInitialQuestionnaireRejectsUnknownCategory(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1"}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	_, err := svc.SubmitInitialQuestionnaire(context.Background(), "u1", InitialQuestionnaireInput{
		Name:                "Ada",
		Sex:                 "female",
		Location:            "London",
		InterestedIn:        "male",
		ImportantCategories: []string{"Astrology"},
	})
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.lastFields != nil {
		t.Fatal("update must not run on invalid input")
	}
}

func TestQuestionnaireStatus(t *testing.T) {
	store := &fakeUserStore{user: &models.User{ID: "u1", HasCompletedQuestionnaire: true}}
	svc := newTestService(t, store, &fakeQuestionStore{}, &fakeAnswerStore{})

	status, err := svc.QuestionnaireStatus(context.Background(), "u1")
	if err != nil {
		t.Fatalf("QuestionnaireStatus: %v", err)
	}
	if !status.HasCompleted {
		t.Fatal("expected completed status")
	}
}

func TestCompletion(t *testing.T) {
	svc := newTestService(t,
		&fakeUserStore{user: &models.User{ID: "u1"}},
		&fakeQuestionStore{count: 8},
		&fakeAnswerStore{count: 2},
	)

	out, err := svc.Completion(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Completion: %v", err)
	}
	if out.CompletionPercentage != 25 || out.AnsweredQuestions != 2 || out.TotalQuestions != 8 {
		t.Fatalf("unexpected completion: %+v", out)
	}
}

func TestCompletionNoActiveQuestions(t *testing.T) {
	svc := newTestService(t,
		&fakeUserStore{user: &models.User{ID: "u1"}},
		&fakeQuestionStore{},
		&fakeAnswerStore{},
	)

	out, err := svc.Completion(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Completion: %v", err)
	}
	if out.CompletionPercentage != 100 {
		t.Fatalf("expected 100 percent, got %v", out.CompletionPercentage)
	}
}

func TestListAnswersPairsQuestions(t *testing.T) {
	q1 := models.Question{ID: "q1", Text: "Coffee?", Type: "boolean", Category: "Food & Cuisine"}
	q2 := models.Question{ID: "q2", Text: "Cats 1-10", Type: "number", Category: "Lifestyle & Habits"}
	answer := models.QuestionnaireAnswer{
		UserID:     "u1",
		QuestionID: "q1",
		Value:      dbtypes.BoolAnswer(true),
	}

	svc := newTestService(t,
		&fakeUserStore{user: &models.User{ID: "u1"}},
		&fakeQuestionStore{questions: []models.Question{q1, q2}},
		&fakeAnswerStore{answers: []models.QuestionnaireAnswer{answer}},
	)

	out, err := svc.ListAnswers(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].Answer == nil || out[0].Answer.Bool == nil || !*out[0].Answer.Bool {
		t.Fatalf("expected answered q1, got %+v", out[0].Answer)
	}
	if out[1].Answer != nil || out[1].AnsweredAt != nil {
		t.Fatal("expected nil answer for unanswered question")
	}
}
