package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"krishr/internal/events"
	"krishr/internal/messaging/kafka"
	payrollerrors "krishr/internal/payroll/errors"
	"krishr/internal/shared/contextutil"
	"krishr/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=approve_service.go -destination=mock/approve_service_mock.go -package=mock
type ApproveService interface {
	GetPayrollAndTotal(ctx context.Context, orgID, previewID string) (PayrollAndTotalResponse, error)
	Approve(ctx context.Context, orgID, previewID, email string) (OrganizationPayrollResponse, error)
	History(ctx context.Context, orgID string) ([]OrganizationPayrollResponse, error)
	HistoryByID(ctx context.Context, orgID, payrollID string) (OrganizationPayrollResponse, error)
}

type approveService struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewApproveService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) ApproveService {
	l := zap.L().Named("payroll.approve")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.approve")
	}
	return &approveService{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *approveService) GetPayrollAndTotal(ctx context.Context, orgID, previewID string) (PayrollAndTotalResponse, error) {
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

// Approve freezes a preview: the status flips to APPROVED and a full
// snapshot of every included pay line is copied into an
// OrganizationPayroll record inside one transaction.
//
// Approval is not guarded against repetition; approving the same preview
// again produces another snapshot. The Idempotency-Key middleware on the
// route is the only dedup in front of it.
func (s *approveService) Approve(ctx context.Context, orgID, previewID, email string) (OrganizationPayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve payroll preview requested",
		zap.String("request_id", rid),
		zap.String("organization_id", orgID),
		zap.String("preview_id", previewID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve preview begin tx failed", zap.Error(err))
		return OrganizationPayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	preview, err := qtx.FindPreviewByID(ctx, orgID, previewID)
	if err != nil {
		if isNotFound(err) {
			return OrganizationPayrollResponse{}, payrollerrors.ErrPreviewNotFound
		}
		return OrganizationPayrollResponse{}, err
	}

	lines, err := qtx.ListPreviewEmployees(ctx, orgID, previewID)
	if err != nil {
		return OrganizationPayrollResponse{}, err
	}
	totals := foldTotals(lines)

	if err := qtx.UpdatePreviewStatus(ctx, preview.ID, StatusApproved); err != nil {
		return OrganizationPayrollResponse{}, err
	}

	payroll := &OrganizationPayroll{
		ID:                   uuid.New(),
		OrganizationID:       preview.OrganizationID,
		PayrollPreviewID:     preview.ID,
		Name:                 preview.Name,
		TotalTaxes:           totals.Taxes,
		TotalGrossPay:        totals.GrossPay,
		TotalBonus:           totals.Bonus,
		TotalDeduction:       totals.Deduction,
		TotalEmployerPension: totals.EmployerPension,
		TotalNetPay:          totals.NetPay,
		ApprovedBy:           email,
		ApprovedAt:           time.Now().UTC(),
	}
	payroll.Employees = make([]OrganizationPayrollEmployee, 0, len(lines))
	for _, line := range lines {
		payroll.Employees = append(payroll.Employees, OrganizationPayrollEmployee{
			ID:                    uuid.New(),
			OrganizationPayrollID: payroll.ID,
			EmployeeID:            line.ID,
			FirstName:             line.FirstName,
			LastName:              line.LastName,
			Email:                 line.Email,
			BasicSalary:           line.BasicSalary,
			Housing:               line.Housing,
			Transport:             line.Transport,
			Allowance:             line.Allowance,
			Bonus:                 line.Bonus,
			Deduction:             line.Deduction,
			Tax:                   line.Tax,
			EmployerPension:       line.EmployerPension,
			GrossPay:              line.GrossPay,
			NetPay:                line.NetPay,
		})
	}

	if err := qtx.CreateOrganizationPayroll(ctx, payroll); err != nil {
		s.logger.Error("approve preview snapshot failed", zap.Error(err))
		return OrganizationPayrollResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueApprovalEmail(ctx, tx, rid, email, payroll); err != nil {
			return OrganizationPayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return OrganizationPayrollResponse{}, err
	}

	s.logger.Info("payroll preview approved",
		zap.String("request_id", rid),
		zap.String("preview_id", previewID),
		zap.String("organization_payroll_id", payroll.ID.String()),
		zap.String("total_net_pay", money.Format(payroll.TotalNetPay)),
	)

	return mapPayrollToResponse(*payroll, true), nil
}

func (s *approveService) queueApprovalEmail(
	ctx context.Context,
	tx *sql.Tx,
	rid, email string,
	payroll *OrganizationPayroll,
) error {
	event := events.EmailRequestedEvent{
		EventType: "email_requested",
		Kind:      "payroll_approved",
		To:        email,
		Subject:   fmt.Sprintf("Payroll %q has been approved", payroll.Name),
		HTML: fmt.Sprintf(
			"<p>Payroll <b>%s</b> was approved for %d employees.</p><p>Total net pay: %s</p>",
			payroll.Name, len(payroll.Employees), money.Format(payroll.TotalNetPay),
		),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "organization_payroll",
		AggregateID:   payroll.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmailRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *approveService) History(ctx context.Context, orgID string) ([]OrganizationPayrollResponse, error) {
	payrolls, err := s.repo.ListOrganizationPayrolls(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]OrganizationPayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapPayrollToResponse(p, false)
	}
	return resp, nil
}

func (s *approveService) HistoryByID(ctx context.Context, orgID, payrollID string) (OrganizationPayrollResponse, error) {
	payroll, err := s.repo.FindOrganizationPayrollByID(ctx, orgID, payrollID)
	if err != nil {
		if isNotFound(err) {
			return OrganizationPayrollResponse{}, payrollerrors.ErrPreviewNotFound
		}
		return OrganizationPayrollResponse{}, err
	}
	return mapPayrollToResponse(*payroll, true), nil
}

func mapPayrollToResponse(p OrganizationPayroll, includeEmployees bool) OrganizationPayrollResponse {
	resp := OrganizationPayrollResponse{
		ID:               p.ID.String(),
		PayrollPreviewID: p.PayrollPreviewID.String(),
		Name:             p.Name,
		Totals: PayrollTotalsResponse{
			Taxes:           money.Format(p.TotalTaxes),
			GrossPay:        money.Format(p.TotalGrossPay),
			Bonus:           money.Format(p.TotalBonus),
			Deduction:       money.Format(p.TotalDeduction),
			EmployerPension: money.Format(p.TotalEmployerPension),
			NetPay:          money.Format(p.TotalNetPay),
		},
		ApprovedBy: p.ApprovedBy,
		ApprovedAt: p.ApprovedAt.Format(time.RFC3339),
	}

	if includeEmployees {
		resp.Employees = make([]PreviewEmployeeResponse, 0, len(p.Employees))
		for _, e := range p.Employees {
			resp.Employees = append(resp.Employees, PreviewEmployeeResponse{
				EmployeeID: e.EmployeeID.String(),
				FirstName:  e.FirstName,
				LastName:   e.LastName,
				Email:      e.Email,

				BasicSalary:     money.Format(e.BasicSalary),
				Housing:         money.Format(e.Housing),
				Transport:       money.Format(e.Transport),
				Allowance:       money.Format(e.Allowance),
				Bonus:           money.Format(e.Bonus),
				Deduction:       money.Format(e.Deduction),
				Tax:             money.Format(e.Tax),
				EmployerPension: money.Format(e.EmployerPension),
				GrossPay:        money.Format(e.GrossPay),
				NetPay:          money.Format(e.NetPay),
			})
		}
	}

	return resp
}
