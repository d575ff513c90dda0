// Package actions sends user-triggered mutations to the backend and
// refreshes the one collection each of them affects.
package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/mfdash/internal/integrations/platform"
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrActionInFlight is returned when match generation is already running
	ErrActionInFlight = errors.New("action already in progress")
	// ErrInvalidAction is returned for requests that fail local validation
	ErrInvalidAction = errors.New("invalid action")
)

// Mutator performs the backend calls behind each action
type Mutator interface {
	SetLoanStatus(ctx context.Context, requestID, loanID, status string) (string, error)
	ApplyForJob(ctx context.Context, requestID, userID, jobID string) (string, error)
	GenerateMatches(ctx context.Context, requestID, userID string) (platform.GenerateResult, error)
}

// Target is the dashboard an action reports to
type Target interface {
	Refresh(ctx context.Context, kind models.Kind) error
	BeginAction(name string) bool
	EndAction(name string)
	Notify(notice models.Notice)
}

// Dispatcher runs actions against a backend on behalf of one dashboard
type Dispatcher struct {
	client Mutator
	target Target
	log    *logrus.Logger
}

// NewDispatcher creates a dispatcher
func NewDispatcher(client Mutator, target Target, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{client: client, target: target, log: log}
}

// Dispatch performs req. Nothing changes locally until the server confirms;
// on success exactly the affected collection is re-fetched. Every outcome
// is also published to the target as a notice.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.ActionRequest) (models.ActionResult, error) {
	result := models.ActionResult{RequestID: req.ID, Kind: req.Kind}
	log := d.log.WithFields(logrus.Fields{
		"action":     req.Kind,
		"request_id": req.ID,
	})

	var (
		kind models.Kind
		err  error
	)
	switch req.Kind {
	case models.ActionSetLoanStatus:
		kind = models.KindLoans
		result.Message, err = d.setLoanStatus(ctx, req)
	case models.ActionApplyForJob:
		kind = models.KindApplications
		result.Message, err = d.applyForJob(ctx, req)
	case models.ActionGenerateJobMatches:
		kind = models.KindJobMatches
		if !d.target.BeginAction(models.BusyMatchGeneration) {
			return result, ErrActionInFlight
		}
		defer d.target.EndAction(models.BusyMatchGeneration)
		result.Message, result.MatchesCount, err = d.generateMatches(ctx, req)
	default:
		err = fmt.Errorf("%w: unknown action %q", ErrInvalidAction, req.Kind)
	}

	if err != nil {
		log.WithError(err).Warn("Action failed")
		d.target.Notify(models.Notice{Level: models.NoticeError, Message: userMessage(err), RequestID: req.ID})
		return result, err
	}

	if rerr := d.target.Refresh(ctx, kind); rerr != nil {
		log.WithError(rerr).Warn("Refresh after action failed")
	} else {
		result.Refreshed = kind
	}

	log.Info("Action completed")
	d.target.Notify(models.Notice{Level: models.NoticeInfo, Message: result.Message, RequestID: req.ID})
	return result, nil
}

func (d *Dispatcher) setLoanStatus(ctx context.Context, req models.ActionRequest) (string, error) {
	if req.LoanID == "" {
		return "", fmt.Errorf("%w: loan id is required", ErrInvalidAction)
	}
	if !models.ValidLoanDecision(req.Status) {
		return "", fmt.Errorf("%w: loan status must be approved or rejected, got %q", ErrInvalidAction, req.Status)
	}
	msg, err := d.client.SetLoanStatus(ctx, req.ID, req.LoanID, req.Status)
	if err != nil {
		return "", fmt.Errorf("failed to set loan %s status: %w", req.LoanID, err)
	}
	if msg == "" {
		msg = fmt.Sprintf("Loan %s %s", req.LoanID, req.Status)
	}
	return msg, nil
}

func (d *Dispatcher) applyForJob(ctx context.Context, req models.ActionRequest) (string, error) {
	if req.UserID == "" || req.JobID == "" {
		return "", fmt.Errorf("%w: user id and job id are required", ErrInvalidAction)
	}
	msg, err := d.client.ApplyForJob(ctx, req.ID, req.UserID, req.JobID)
	if err != nil {
		return "", fmt.Errorf("failed to apply for job %s: %w", req.JobID, err)
	}
	if msg == "" {
		msg = "Application submitted"
	}
	return msg, nil
}

func (d *Dispatcher) generateMatches(ctx context.Context, req models.ActionRequest) (string, int, error) {
	if req.UserID == "" {
		return "", 0, fmt.Errorf("%w: user id is required", ErrInvalidAction)
	}
	res, err := d.client.GenerateMatches(ctx, req.ID, req.UserID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate job matches: %w", err)
	}
	return fmt.Sprintf("Found %d job matches", res.MatchesCount), res.MatchesCount, nil
}

// userMessage picks the text shown to the user for a failed action
func userMessage(err error) string {
	var (
		apiErr *platform.APIError
		netErr *platform.NetworkError
		badErr *platform.MalformedResponseError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.UserMessage()
	case errors.As(err, &netErr):
		return "Could not reach the server"
	case errors.As(err, &badErr):
		return "Unexpected response from the server"
	default:
		return err.Error()
	}
}
