package service

import (
	"context"

	"github.com/examhub/examhub/internal/dto"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/internal/repository"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
)

type QuestionService interface {
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*model.ExamQuestion, error)
	GetQuestion(ctx context.Context, id uint) (*model.ExamQuestion, error)
	ListQuestions(ctx context.Context, limit, offset int) ([]model.ExamQuestion, int64, error)
	ListQuestionsForPaper(ctx context.Context, filter *dto.QuestionFilter, limit, offset int) ([]model.ExamQuestion, int64, error)
	UpdateQuestion(ctx context.Context, id uint, req *dto.UpdateQuestionRequest) (*model.ExamQuestion, error)
	DeleteQuestion(ctx context.Context, id uint) (string, error)
}

type questionService struct {
	questions *repository.QuestionRepository
}

func NewQuestionService(questions *repository.QuestionRepository) QuestionService {
	return &questionService{questions: questions}
}

func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*model.ExamQuestion, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CreateQuestion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Creating exam question").
		Int("question_number", req.QuestionNumber).
		Log()

	question := &model.ExamQuestion{
		Question:        req.Question,
		QuestionNumber:  req.QuestionNumber,
		Answer:          req.Answer,
		ExamNameID:      req.ExamNameID,
		ExamTypeID:      req.ExamTypeID,
		ExamPaperTypeID: req.ExamPaperTypeID,
		ExamYearID:      req.ExamYearID,
		ExamSubjectID:   req.ExamSubjectID,
		OptionA:         req.OptionA,
		OptionB:         req.OptionB,
		OptionC:         req.OptionC,
		OptionD:         req.OptionD,
		OptionE:         req.OptionE,
		Description:     req.Description,
	}

	if err := s.questions.Create(ctx, question); err != nil {
		logger.ErrorWithContext(ctx, "Failed to create exam question").
			Err(err).
			Log()
		return nil, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	return question, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*model.ExamQuestion, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetQuestion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "Exam question not found").
			Uint("question_id", id).
			Log()
		return nil, domainerrors.ErrNotFound
	}

	return question, nil
}

func (s *questionService) ListQuestions(ctx context.Context, limit, offset int) ([]model.ExamQuestion, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListQuestions")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	questions, total, err := s.questions.List(ctx, limit, offset)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list exam questions").
			Err(err).
			Log()
		return nil, 0, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	return questions, total, nil
}

// ListQuestionsForPaper returns the questions of a single paper, identified
// by its full taxonomy.
func (s *questionService) ListQuestionsForPaper(ctx context.Context, filter *dto.QuestionFilter, limit, offset int) ([]model.ExamQuestion, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListQuestionsForPaper")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	questions, total, err := s.questions.ListByPaper(
		ctx,
		filter.ExamNameID,
		filter.ExamTypeID,
		filter.ExamPaperTypeID,
		filter.ExamYearID,
		filter.ExamSubjectID,
		limit,
		offset,
	)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list questions for paper").
			Err(err).
			Log()
		return nil, 0, domainerrors.WrapError(domainerrors.ErrInternal, err)
	}

	return questions, total, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, id uint, req *dto.UpdateQuestionRequest) (*model.ExamQuestion, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateQuestion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	logger.InfoWithContext(ctx, "Updating exam question").
		Uint("question_id", id).
		Log()

	fields := map[string]interface{}{}
	if req.Question != "" {
		fields["question"] = req.Question
	}
	if req.QuestionNumber != nil {
		fields["question_number"] = *req.QuestionNumber
	}
	if req.Answer != "" {
		fields["answer"] = req.Answer
	}
	if req.ExamNameID != nil {
		fields["exam_name_id"] = *req.ExamNameID
	}
	if req.ExamTypeID != nil {
		fields["exam_type_id"] = *req.ExamTypeID
	}
	if req.ExamPaperTypeID != nil {
		fields["exam_paper_type_id"] = *req.ExamPaperTypeID
	}
	if req.ExamYearID != nil {
		fields["exam_year_id"] = *req.ExamYearID
	}
	if req.ExamSubjectID != nil {
		fields["exam_subject_id"] = *req.ExamSubjectID
	}
	if req.OptionA != "" {
		fields["option_a"] = req.OptionA
	}
	if req.OptionB != "" {
		fields["option_b"] = req.OptionB
	}
	if req.OptionC != "" {
		fields["option_c"] = req.OptionC
	}
	if req.OptionD != "" {
		fields["option_d"] = req.OptionD
	}
	if req.OptionE != nil {
		fields["option_e"] = *req.OptionE
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		if err := s.questions.Update(ctx, id, fields); err != nil {
			logger.WarnWithContext(ctx, "Exam question update failed").
				Uint("question_id", id).
				Err(err).
				Log()
			return nil, domainerrors.ErrNotFound
		}
	}

	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.ErrNotFound
	}

	return question, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uint) (string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteQuestion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if err := s.questions.Delete(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "Exam question delete failed").
			Uint("question_id", id).
			Err(err).
			Log()
		return "", domainerrors.ErrNotFound
	}

	return "success", nil
}
