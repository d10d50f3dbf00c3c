package appraisal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appraisalerrors "krishr/internal/appraisal/errors"
	"krishr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=appraisal_service.go -destination=mock/appraisal_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, orgID string, req CreateAppraisalRequest) (AppraisalDTO, error)
	GetAll(ctx context.Context, orgID string) ([]AppraisalDTO, error)
	GetByID(ctx context.Context, orgID, id string) (AppraisalDTO, error)
	GetParticipants(ctx context.Context, orgID, appraisalID string) ([]EmployeeAppraisalDTO, error)
	SubmitResponses(ctx context.Context, orgID, appraisalID, employeeID string, req SubmitResponsesRequest) (EmployeeAppraisalDTO, error)
	GetEmployeeAppraisal(ctx context.Context, orgID, appraisalID, employeeID string) (EmployeeAppraisalDTO, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("appraisal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("appraisal.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Create persists the template tree and fans it out to every current
// employee in one transaction.
func (s *service) Create(ctx context.Context, orgID string, req CreateAppraisalRequest) (AppraisalDTO, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create appraisal requested",
		zap.String("request_id", rid),
		zap.String("organization_id", orgID),
		zap.String("title", req.Title),
	)

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return AppraisalDTO{}, appraisalerrors.ErrAppraisalNotFound
	}

	appraisal := &Appraisal{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Title:          req.Title,
		Description:    req.Description,
	}
	for i, sec := range req.Sections {
		section := AppraisalSection{
			ID:          uuid.New(),
			AppraisalID: appraisal.ID,
			Title:       sec.Title,
			Position:    i,
		}
		for j, prompt := range sec.Questions {
			section.Questions = append(section.Questions, AppraisalQuestion{
				ID:        uuid.New(),
				SectionID: section.ID,
				Prompt:    prompt,
				Position:  j,
			})
		}
		appraisal.Sections = append(appraisal.Sections, section)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create appraisal begin tx failed", zap.Error(err))
		return AppraisalDTO{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, appraisal); err != nil {
		s.logger.Error("create appraisal persist failed", zap.Error(err))
		return AppraisalDTO{}, err
	}

	employeeIDs, err := qtx.ListEmployeeIDs(ctx, orgID)
	if err != nil {
		return AppraisalDTO{}, err
	}
	rows := make([]EmployeeAppraisal, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		rows = append(rows, EmployeeAppraisal{
			ID:             uuid.New(),
			OrganizationID: orgUUID,
			AppraisalID:    appraisal.ID,
			EmployeeID:     employeeID,
			Status:         StatusPending,
		})
	}
	if err := qtx.CreateEmployeeAppraisals(ctx, rows); err != nil {
		s.logger.Error("create appraisal fan-out failed", zap.Error(err))
		return AppraisalDTO{}, err
	}

	if err := tx.Commit(); err != nil {
		return AppraisalDTO{}, err
	}

	s.logger.Info("appraisal created",
		zap.String("request_id", rid),
		zap.String("appraisal_id", appraisal.ID.String()),
		zap.Int("participants", len(rows)),
	)

	return mapAppraisalToDTO(*appraisal, true), nil
}

func (s *service) GetAll(ctx context.Context, orgID string) ([]AppraisalDTO, error) {
	appraisals, err := s.repo.FindAllByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]AppraisalDTO, len(appraisals))
	for i, a := range appraisals {
		resp[i] = mapAppraisalToDTO(a, false)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, orgID, id string) (AppraisalDTO, error) {
	appraisal, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppraisalDTO{}, appraisalerrors.ErrAppraisalNotFound
		}
		return AppraisalDTO{}, err
	}
	return mapAppraisalToDTO(*appraisal, true), nil
}

func (s *service) GetParticipants(ctx context.Context, orgID, appraisalID string) ([]EmployeeAppraisalDTO, error) {
	rows, err := s.repo.ListEmployeeAppraisals(ctx, orgID, appraisalID)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeAppraisalDTO, len(rows))
	for i, row := range rows {
		resp[i] = mapEmployeeAppraisalToDTO(row, nil)
	}
	return resp, nil
}

func (s *service) SubmitResponses(
	ctx context.Context,
	orgID, appraisalID, employeeID string,
	req SubmitResponsesRequest,
) (EmployeeAppraisalDTO, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit appraisal responses requested",
		zap.String("request_id", rid),
		zap.String("appraisal_id", appraisalID),
		zap.String("employee_id", employeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeAppraisalDTO{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindEmployeeAppraisal(ctx, orgID, appraisalID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeAppraisalDTO{}, appraisalerrors.ErrEmployeeAppraisalNotFound
		}
		return EmployeeAppraisalDTO{}, err
	}
	if row.Status == StatusSubmitted {
		return EmployeeAppraisalDTO{}, appraisalerrors.ErrAppraisalAlreadySubmitted
	}

	// Every response must target a question of this appraisal's tree.
	questionIDs, err := qtx.ListQuestionIDs(ctx, appraisalID)
	if err != nil {
		return EmployeeAppraisalDTO{}, err
	}
	known := make(map[uuid.UUID]struct{}, len(questionIDs))
	for _, id := range questionIDs {
		known[id] = struct{}{}
	}

	responses := make([]AppraisalResponse, 0, len(req.Responses))
	for _, qr := range req.Responses {
		questionID, err := uuid.Parse(qr.QuestionID)
		if err != nil {
			return EmployeeAppraisalDTO{}, appraisalerrors.ErrQuestionNotInAppraisal
		}
		if _, ok := known[questionID]; !ok {
			return EmployeeAppraisalDTO{}, appraisalerrors.ErrQuestionNotInAppraisal
		}
		responses = append(responses, AppraisalResponse{
			ID:                  uuid.New(),
			EmployeeAppraisalID: row.ID,
			QuestionID:          questionID,
			Answer:              qr.Answer,
		})
	}

	if err := qtx.SaveResponses(ctx, responses); err != nil {
		s.logger.Error("save appraisal responses failed", zap.Error(err))
		return EmployeeAppraisalDTO{}, err
	}

	now := time.Now().UTC()
	row.Status = StatusSubmitted
	row.SubmittedAt = &now
	if err := qtx.MarkSubmitted(ctx, row); err != nil {
		return EmployeeAppraisalDTO{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeAppraisalDTO{}, err
	}

	s.logger.Info("appraisal responses submitted",
		zap.String("request_id", rid),
		zap.String("employee_appraisal_id", row.ID.String()),
		zap.Int("responses", len(responses)),
	)

	return mapEmployeeAppraisalToDTO(*row, responses), nil
}

func (s *service) GetEmployeeAppraisal(ctx context.Context, orgID, appraisalID, employeeID string) (EmployeeAppraisalDTO, error) {
	row, err := s.repo.FindEmployeeAppraisal(ctx, orgID, appraisalID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeAppraisalDTO{}, appraisalerrors.ErrEmployeeAppraisalNotFound
		}
		return EmployeeAppraisalDTO{}, err
	}

	responses, err := s.repo.ListResponses(ctx, row.ID.String())
	if err != nil {
		return EmployeeAppraisalDTO{}, err
	}

	return mapEmployeeAppraisalToDTO(*row, responses), nil
}

func mapAppraisalToDTO(a Appraisal, includeTree bool) AppraisalDTO {
	dto := AppraisalDTO{
		ID:             a.ID.String(),
		OrganizationID: a.OrganizationID.String(),
		Title:          a.Title,
		Description:    a.Description,
	}
	if !includeTree {
		return dto
	}

	for _, section := range a.Sections {
		secDTO := SectionDTO{
			ID:    section.ID.String(),
			Title: section.Title,
		}
		for _, q := range section.Questions {
			secDTO.Questions = append(secDTO.Questions, QuestionDTO{
				ID:     q.ID.String(),
				Prompt: q.Prompt,
			})
		}
		dto.Sections = append(dto.Sections, secDTO)
	}
	return dto
}

func mapEmployeeAppraisalToDTO(row EmployeeAppraisal, responses []AppraisalResponse) EmployeeAppraisalDTO {
	dto := EmployeeAppraisalDTO{
		ID:          row.ID.String(),
		AppraisalID: row.AppraisalID.String(),
		EmployeeID:  row.EmployeeID.String(),
		Status:      row.Status,
	}
	if row.SubmittedAt != nil {
		dto.SubmittedAt = row.SubmittedAt.Format(time.RFC3339)
	}
	for _, r := range responses {
		dto.Responses = append(dto.Responses, AppraisalResponseDTO{
			QuestionID: r.QuestionID.String(),
			Answer:     r.Answer,
		})
	}
	return dto
}
