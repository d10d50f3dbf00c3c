package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	payrollerrors "krishr/internal/payroll/errors"
	"krishr/internal/shared/contextutil"
	"krishr/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

//go:generate mockgen -source=preview_service.go -destination=mock/preview_service_mock.go -package=mock
type PreviewService interface {
	Create(ctx context.Context, orgID, email string, req CreatePayrollPreviewRequest) (PayrollPreviewResponse, error)
	GetAll(ctx context.Context, orgID string) ([]PayrollPreviewResponse, error)
	Get(ctx context.Context, orgID, previewID string) (PayrollAndTotalResponse, error)
	UpdateEmployeeInfo(ctx context.Context, orgID, previewID, employeeID string, req UpdateEmployeePayrollRequest) (PreviewEmployeeResponse, error)
	AddEmployee(ctx context.Context, orgID, previewID, employeeID string) error
	RemoveEmployee(ctx context.Context, orgID, previewID, employeeID string) error
}

type previewService struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewPreviewService(db *sql.DB, repo Repository, logger ...*zap.Logger) PreviewService {
	l := zap.L().Named("payroll.preview")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.preview")
	}
	return &previewService{db: db, repo: repo, logger: l}
}

func (s *previewService) Create(
	ctx context.Context,
	orgID, email string,
	req CreatePayrollPreviewRequest,
) (PayrollPreviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll preview requested",
		zap.String("request_id", rid),
		zap.String("organization_id", orgID),
		zap.String("name", req.Name),
	)

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return PayrollPreviewResponse{}, payrollerrors.ErrPreviewNotFound
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return PayrollPreviewResponse{}, payrollerrors.ErrInvalidPayrollPeriod
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return PayrollPreviewResponse{}, payrollerrors.ErrInvalidPayrollPeriod
	}
	if periodEnd.Before(periodStart) {
		return PayrollPreviewResponse{}, payrollerrors.ErrInvalidPayrollPeriod
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create preview begin tx failed", zap.Error(err))
		return PayrollPreviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsPreviewByName(ctx, orgID, req.Name)
	if err != nil {
		return PayrollPreviewResponse{}, err
	}
	if taken {
		return PayrollPreviewResponse{}, payrollerrors.ErrPreviewNameTaken
	}

	preview := &PayrollPreview{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Name:           req.Name,
		Status:         StatusPending,
		CreatedBy:      email,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
	}
	if err := qtx.CreatePreview(ctx, preview); err != nil {
		s.logger.Error("create preview persist failed", zap.Error(err))
		return PayrollPreviewResponse{}, err
	}

	lines, err := qtx.ListPayrollEligibleEmployees(ctx, orgID)
	if err != nil {
		return PayrollPreviewResponse{}, err
	}

	rows := make([]EmployeePayrollPreview, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, EmployeePayrollPreview{
			ID:               uuid.New(),
			OrganizationID:   orgUUID,
			PayrollPreviewID: preview.ID,
			EmployeeID:       line.ID,
		})
	}
	if err := qtx.CreatePreviewEmployees(ctx, rows); err != nil {
		s.logger.Error("create preview employee rows failed", zap.Error(err))
		return PayrollPreviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollPreviewResponse{}, err
	}

	s.logger.Info("payroll preview created",
		zap.String("request_id", rid),
		zap.String("preview_id", preview.ID.String()),
		zap.Int("employees", len(rows)),
	)

	return mapPreviewToResponse(*preview), nil
}

func (s *previewService) GetAll(ctx context.Context, orgID string) ([]PayrollPreviewResponse, error) {
	previews, err := s.repo.ListPreviews(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollPreviewResponse, len(previews))
	for i, p := range previews {
		resp[i] = mapPreviewToResponse(p)
	}
	return resp, nil
}

func (s *previewService) Get(ctx context.Context, orgID, previewID string) (PayrollAndTotalResponse, error) {
	preview, err := s.repo.FindPreviewByID(ctx, orgID, previewID)
	if err != nil {
		if isNotFound(err) {
			return PayrollAndTotalResponse{}, payrollerrors.ErrPreviewNotFound
		}
		return PayrollAndTotalResponse{}, err
	}

	lines, err := s.repo.ListPreviewEmployees(ctx, orgID, previewID)
	if err != nil {
		return PayrollAndTotalResponse{}, err
	}

	return PayrollAndTotalResponse{
		Preview:   mapPreviewToResponse(*preview),
		Employees: mapLinesToResponse(lines),
		Totals:    mapTotalsToResponse(foldTotals(lines)),
	}, nil
}

func (s *previewService) UpdateEmployeeInfo(
	ctx context.Context,
	orgID, previewID, employeeID string,
	req UpdateEmployeePayrollRequest,
) (PreviewEmployeeResponse, error) {
	s.logger.Debug("update preview employee payroll requested",
		zap.String("organization_id", orgID),
		zap.String("preview_id", previewID),
		zap.String("employee_id", employeeID),
	)

	line, err := parsePayFields(req)
	if err != nil {
		return PreviewEmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PreviewEmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	preview, err := qtx.FindPreviewByID(ctx, orgID, previewID)
	if err != nil {
		if isNotFound(err) {
			return PreviewEmployeeResponse{}, payrollerrors.ErrPreviewNotFound
		}
		return PreviewEmployeeResponse{}, err
	}
	if preview.Status != StatusPending {
		return PreviewEmployeeResponse{}, payrollerrors.ErrPreviewNotEditable
	}

	included, err := qtx.ExistsPreviewEmployee(ctx, previewID, employeeID)
	if err != nil {
		return PreviewEmployeeResponse{}, err
	}
	if !included {
		return PreviewEmployeeResponse{}, payrollerrors.ErrEmployeeNotInPreview
	}

	if err := qtx.UpdateEmployeePayFields(ctx, orgID, employeeID, line); err != nil {
		s.logger.Error("update preview employee payroll failed", zap.Error(err))
		return PreviewEmployeeResponse{}, err
	}

	updated, err := qtx.FindPayLine(ctx, orgID, employeeID)
	if err != nil {
		if isNotFound(err) {
			return PreviewEmployeeResponse{}, payrollerrors.ErrPayrollEmployeeNotFound
		}
		return PreviewEmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PreviewEmployeeResponse{}, err
	}

	return mapLineToResponse(*updated), nil
}

func (s *previewService) AddEmployee(ctx context.Context, orgID, previewID, employeeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	preview, err := qtx.FindPreviewByID(ctx, orgID, previewID)
	if err != nil {
		if isNotFound(err) {
			return payrollerrors.ErrPreviewNotFound
		}
		return err
	}
	if preview.Status != StatusPending {
		return payrollerrors.ErrPreviewNotEditable
	}

	line, err := qtx.FindPayLine(ctx, orgID, employeeID)
	if err != nil {
		if isNotFound(err) {
			return payrollerrors.ErrPayrollEmployeeNotFound
		}
		return err
	}

	included, err := qtx.ExistsPreviewEmployee(ctx, previewID, employeeID)
	if err != nil {
		return err
	}
	if included {
		return payrollerrors.ErrEmployeeAlreadyInPreview
	}

	err = qtx.CreatePreviewEmployees(ctx, []EmployeePayrollPreview{{
		ID:               uuid.New(),
		OrganizationID:   preview.OrganizationID,
		PayrollPreviewID: preview.ID,
		EmployeeID:       line.ID,
	}})
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *previewService) RemoveEmployee(ctx context.Context, orgID, previewID, employeeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	preview, err := qtx.FindPreviewByID(ctx, orgID, previewID)
	if err != nil {
		if isNotFound(err) {
			return payrollerrors.ErrPreviewNotFound
		}
		return err
	}
	if preview.Status != StatusPending {
		return payrollerrors.ErrPreviewNotEditable
	}

	removed, err := qtx.RemovePreviewEmployee(ctx, previewID, employeeID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return payrollerrors.ErrEmployeeNotInPreview
	}

	return tx.Commit()
}

func parsePayFields(req UpdateEmployeePayrollRequest) (EmployeePayLine, error) {
	var (
		line EmployeePayLine
		err  error
	)

	fields := []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&line.BasicSalary, req.BasicSalary},
		{&line.Housing, req.Housing},
		{&line.Transport, req.Transport},
		{&line.Allowance, req.Allowance},
		{&line.Bonus, req.Bonus},
		{&line.Deduction, req.Deduction},
		{&line.Tax, req.Tax},
		{&line.EmployerPension, req.EmployerPension},
		{&line.GrossPay, req.GrossPay},
		{&line.NetPay, req.NetPay},
	}
	for _, f := range fields {
		if *f.dst, err = money.Parse(f.raw); err != nil {
			return EmployeePayLine{}, err
		}
	}
	return line, nil
}

// foldTotals reduces the pay lines with plain decimal addition. The whole
// employee set of one organization is assumed to fit in memory.
func foldTotals(lines []EmployeePayLine) PayrollTotals {
	var t PayrollTotals
	for _, line := range lines {
		t.Taxes = t.Taxes.Add(line.Tax)
		t.GrossPay = t.GrossPay.Add(line.GrossPay)
		t.Bonus = t.Bonus.Add(line.Bonus)
		t.Deduction = t.Deduction.Add(line.Deduction)
		t.EmployerPension = t.EmployerPension.Add(line.EmployerPension)
		t.NetPay = t.NetPay.Add(line.NetPay)
	}
	return t
}

// PayrollTotals is the decimal aggregate of one payroll run.
type PayrollTotals struct {
	Taxes           decimal.Decimal
	GrossPay        decimal.Decimal
	Bonus           decimal.Decimal
	Deduction       decimal.Decimal
	EmployerPension decimal.Decimal
	NetPay          decimal.Decimal
}

func mapPreviewToResponse(p PayrollPreview) PayrollPreviewResponse {
	return PayrollPreviewResponse{
		ID:             p.ID.String(),
		OrganizationID: p.OrganizationID.String(),
		Name:           p.Name,
		Status:         p.Status,
		CreatedBy:      p.CreatedBy,
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
	}
}

func mapLineToResponse(line EmployeePayLine) PreviewEmployeeResponse {
	return PreviewEmployeeResponse{
		EmployeeID: line.ID.String(),
		FirstName:  line.FirstName,
		LastName:   line.LastName,
		Email:      line.Email,

		BasicSalary:     money.Format(line.BasicSalary),
		Housing:         money.Format(line.Housing),
		Transport:       money.Format(line.Transport),
		Allowance:       money.Format(line.Allowance),
		Bonus:           money.Format(line.Bonus),
		Deduction:       money.Format(line.Deduction),
		Tax:             money.Format(line.Tax),
		EmployerPension: money.Format(line.EmployerPension),
		GrossPay:        money.Format(line.GrossPay),
		NetPay:          money.Format(line.NetPay),
	}
}

func mapLinesToResponse(lines []EmployeePayLine) []PreviewEmployeeResponse {
	resp := make([]PreviewEmployeeResponse, len(lines))
	for i, line := range lines {
		resp[i] = mapLineToResponse(line)
	}
	return resp
}

func mapTotalsToResponse(t PayrollTotals) PayrollTotalsResponse {
	return PayrollTotalsResponse{
		Taxes:           money.Format(t.Taxes),
		GrossPay:        money.Format(t.GrossPay),
		Bonus:           money.Format(t.Bonus),
		Deduction:       money.Format(t.Deduction),
		EmployerPension: money.Format(t.EmployerPension),
		NetPay:          money.Format(t.NetPay),
	}
}
