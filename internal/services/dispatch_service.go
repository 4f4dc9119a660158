// Package services – DispatchService
//
// This file implements the fan-out dispatcher, the core of the relay. A
// dispatch resolves buildings (explicit ids or named regions), looks up the
// registered rooms, uploads an optional image exactly once, then posts the
// message to every room independently through a bounded worker pool and
// aggregates the outcomes into a per-building report.
//
// Precondition violations (bad ids, nothing matched, image upload failure)
// fail fast before any send; once sending starts, every room gets its
// attempt, and one room's failure never cancels another's. This is best-effort
// broadcast with precise accounting, not a delivery queue: one attempt per
// room, no retries, no persistence of outcomes.
package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/unicode/norm"

	"github.com/resihall/relay-backend/internal/buildings"
	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/groupme"
	"github.com/resihall/relay-backend/internal/registry"
)

// DispatchStatus is the overall outcome of a dispatch.
type DispatchStatus string

const (
	// StatusSent means every room send succeeded.
	StatusSent DispatchStatus = "sent"
	// StatusPartial means at least one send succeeded and at least one failed.
	StatusPartial DispatchStatus = "partial"
	// StatusFailed means every send failed after buildings and chats matched.
	StatusFailed DispatchStatus = "failed"
)

// ImageAttachment carries an optional uploaded file through a dispatch.
type ImageAttachment struct {
	Data        []byte
	ContentType string
}

// DispatchRequest is the transient input of one dispatch. BuildingIDs are
// kept as strings from the form layer; integer coercion is a dispatcher
// concern because a bad id must fail the whole request.
type DispatchRequest struct {
	BuildingIDs []string
	Regions     []string
	Body        string
	Image       *ImageAttachment
}

// RoomOutcome records one room's send attempt.
type RoomOutcome struct {
	RoomID     string `json:"room_id"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DispatchReport groups outcomes by building id. It is built as sends
// complete and immutable once returned.
type DispatchReport struct {
	Status      DispatchStatus        `json:"status"`
	PerBuilding map[int][]RoomOutcome `json:"per_building"`
	Sent        int                   `json:"sent"`
	Failed      int                   `json:"failed"`
}

// Sender is the gateway capability needed by the dispatcher.
type Sender interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
	PostMessage(ctx context.Context, roomID, text, imageURL string) groupme.SendResult
}

var (
	sendOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_room_sends_total",
			Help: "Per-room message send attempts by outcome.",
		},
		[]string{"outcome"}, // ok | rejected | transport
	)
	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_dispatches_total",
			Help: "Completed dispatches by overall status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(sendOutcomes, dispatches)
}

// DispatchService fans announcements out to registered rooms.
type DispatchService struct {
	Buildings *buildings.Index
	Store     registry.Store
	Gateway   Sender

	// Concurrency bounds the number of parallel room sends. Values < 1 are
	// treated as 1 (sequential).
	Concurrency int
}

// NewDispatchService wires the dispatcher.
func NewDispatchService(idx *buildings.Index, store registry.Store, gw Sender, concurrency int) *DispatchService {
	return &DispatchService{Buildings: idx, Store: store, Gateway: gw, Concurrency: concurrency}
}

// Dispatch runs the full fan-out contract. Precondition errors
// (ErrInvalidBuildingID, ErrNoBuildingsMatched, ErrNoChatsFound,
// ErrImageUploadFailed) are returned with a nil report before any send; once
// sends begin the report is always returned with a nil error, and the
// caller branches on Report.Status.
func (s *DispatchService) Dispatch(ctx context.Context, req DispatchRequest) (*DispatchReport, error) {
	ctx, span := otel.Tracer("dispatch").Start(ctx, "Dispatch")
	defer span.End()

	ids, err := s.resolveBuildings(req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("dispatch.buildings", len(ids)))

	byBuilding, err := s.Store.FindByBuildingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(byBuilding) == 0 {
		return nil, ErrNoChatsFound
	}

	imageURL := ""
	if req.Image != nil {
		imageURL, err = s.Gateway.UploadImage(ctx, req.Image.Data, req.Image.ContentType)
		if err != nil {
			log.Warn().Err(err).Msg("dispatch: image upload failed, aborting")
			return nil, ErrImageUploadFailed
		}
	}

	body := normalizeBody(req.Body)
	report := s.fanOut(ctx, byBuilding, body, imageURL)

	span.SetAttributes(
		attribute.String("dispatch.status", string(report.Status)),
		attribute.Int("dispatch.sent", report.Sent),
		attribute.Int("dispatch.failed", report.Failed),
	)
	dispatches.WithLabelValues(string(report.Status)).Inc()
	log.Info().
		Str("status", string(report.Status)).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("buildings", len(report.PerBuilding)).
		Msg("dispatch: completed")
	return report, nil
}

// resolveBuildings computes the effective building id set. Explicit ids win
// over regions; a non-numeric id is a request-level validation error. With
// no ids, regions are resolved through the index ("all" expands to every
// building). An empty resolution fails before any network activity.
func (s *DispatchService) resolveBuildings(req DispatchRequest) ([]int, error) {
	if len(req.BuildingIDs) > 0 {
		ids := make([]int, 0, len(req.BuildingIDs))
		for _, raw := range req.BuildingIDs {
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, ErrInvalidBuildingID
			}
			ids = append(ids, id)
		}
		sort.Ints(ids)
		return ids, nil
	}

	ids := s.Buildings.IDsForRegions(req.Regions)
	if len(ids) == 0 {
		return nil, ErrNoBuildingsMatched
	}
	return ids, nil
}

// sendJob is one room send queued into the worker pool.
type sendJob struct {
	buildingID int
	roomID     string
}

// fanOut posts the message to every room through a bounded worker pool and
// collects outcomes grouped by building id. Grouping is independent of
// completion order, so workers finishing out of order cannot change the
// report shape. No cancellation: every queued job runs to completion or to
// the gateway's per-call timeout.
func (s *DispatchService) fanOut(ctx context.Context, byBuilding map[int][]domain.ChatRegistration, body, imageURL string) *DispatchReport {
	var jobs []sendJob
	for buildingID, regs := range byBuilding {
		for _, reg := range regs {
			jobs = append(jobs, sendJob{buildingID: buildingID, roomID: reg.RoomID})
		}
	}

	workers := s.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	type sendDone struct {
		job    sendJob
		result groupme.SendResult
	}

	jobCh := make(chan sendJob)
	doneCh := make(chan sendDone, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				doneCh <- sendDone{job: job, result: s.Gateway.PostMessage(ctx, job.roomID, body, imageURL)}
			}
		}()
	}
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()
	close(doneCh)

	report := &DispatchReport{PerBuilding: make(map[int][]RoomOutcome, len(byBuilding))}
	for done := range doneCh {
		outcome := RoomOutcome{
			RoomID:     done.job.roomID,
			Success:    done.result.Success,
			StatusCode: done.result.StatusCode,
			Error:      done.result.Error,
		}
		report.PerBuilding[done.job.buildingID] = append(report.PerBuilding[done.job.buildingID], outcome)

		switch {
		case done.result.Success:
			report.Sent++
			sendOutcomes.WithLabelValues("ok").Inc()
		case done.result.Transport:
			report.Failed++
			sendOutcomes.WithLabelValues("transport").Inc()
		default:
			report.Failed++
			sendOutcomes.WithLabelValues("rejected").Inc()
		}
	}

	// Deterministic ordering within each building for stable responses.
	for id := range report.PerBuilding {
		rooms := report.PerBuilding[id]
		sort.Slice(rooms, func(a, b int) bool { return rooms[a].RoomID < rooms[b].RoomID })
	}

	switch {
	case report.Failed == 0:
		report.Status = StatusSent
	case report.Sent == 0:
		report.Status = StatusFailed
	default:
		report.Status = StatusPartial
	}
	return report
}

// normalizeBody NFC-normalizes and trims the announcement text so visually
// identical composed/decomposed input renders the same in every client.
func normalizeBody(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
