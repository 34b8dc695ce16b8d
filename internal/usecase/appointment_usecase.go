package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/infrastructure/broadcast"
	"hospital-portal/internal/infrastructure/fallback"
	"hospital-portal/internal/infrastructure/fixture"
	"hospital-portal/internal/infrastructure/metrics"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/service"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrSlotConflict      = errors.New("slot is already booked")
	ErrInvalidDate       = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidSlot       = errors.New("time is not one of the bookable slots")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrNotPatientSession = errors.New("only patients can book appointments")
)

const dateLayout = "2006-01-02"

// Appointment source names, also used as metric labels.
const (
	sourcePrimary  = "primary"
	sourceFallback = "fallback"
	sourceFixture  = "fixture"
)

// maxIDAttempts bounds retries when another process took the same
// time-based id.
const maxIDAttempts = 3

type AppointmentUsecase interface {
	AvailableSlots(ctx context.Context, doctorID, date string) (*dto.SlotAvailabilityResponse, error)
	Book(ctx context.Context, session entity.Session, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error)
	ListForPatient(ctx context.Context, session entity.Session) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, session entity.Session) (*dto.AppointmentListResponse, error)
	Export(ctx context.Context) (*dto.AppointmentListResponse, error)
	Subscribe(ctx context.Context) (<-chan broadcast.Notification, error)
}

type appointmentUsecase struct {
	store           *store.Handle
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	fallback        fallback.AppointmentList
	catalog         *fixture.Catalog
	broadcaster     broadcast.Broadcaster
	locks           *service.SlotLockService
	metrics         *metrics.Metrics
	slots           []string
	ids             *appointmentIDs
	now             func() time.Time
}

func NewAppointmentUsecase(
	handle *store.Handle,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	fallbackList fallback.AppointmentList,
	catalog *fixture.Catalog,
	broadcaster broadcast.Broadcaster,
	locks *service.SlotLockService,
	m *metrics.Metrics,
	slots []string,
) AppointmentUsecase {
	return &appointmentUsecase{
		store:           handle,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		fallback:        fallbackList,
		catalog:         catalog,
		broadcaster:     broadcaster,
		locks:           locks,
		metrics:         m,
		slots:           slots,
		ids:             newAppointmentIDs(time.Now),
		now:             time.Now,
	}
}

// AvailableSlots subtracts every taken time for doctor/date from the slot
// menu. A fully booked day yields an empty Available list, not an error.
func (u *appointmentUsecase) AvailableSlots(ctx context.Context, doctorID, date string) (*dto.SlotAvailabilityResponse, error) {
	doctor := entity.DoctorID(strings.TrimSpace(doctorID))
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	existing, err := u.gatherForSlot(ctx, doctor, date)
	if err != nil {
		return nil, err
	}

	taken := lo.Uniq(lo.Map(existing, func(a entity.Appointment, _ int) string { return a.Time }))
	available := lo.Without(u.slots, taken...)
	inMenu := lo.Filter(u.slots, func(s string, _ int) bool { return lo.Contains(taken, s) })

	return &dto.SlotAvailabilityResponse{
		Doctor:    doctor.String(),
		Date:      date,
		Available: available,
		Taken:     inMenu,
	}, nil
}

// Book commits an appointment for the session's patient.
//
// Flow:
// 1. Validate date, slot and doctor
// 2. Lock doctor/date within this process
// 3. Re-scan primary, fallback and fixture sources for the slot
// 4. Commit to the primary store, re-checking it inside the transaction
// 5. If the primary store fails -> append to the fallback list instead
// 6. Broadcast appointment:created (best effort)
func (u *appointmentUsecase) Book(ctx context.Context, session entity.Session, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error) {
	if session.Role != entity.RolePatient || strings.TrimSpace(session.Profile) == "" {
		return nil, ErrNotPatientSession
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if !lo.Contains(u.slots, req.Time) {
		return nil, ErrInvalidSlot
	}

	doctor := entity.DoctorID(strings.TrimSpace(req.DoctorID))
	doctorName, err := u.doctorName(ctx, doctor)
	if err != nil {
		return nil, err
	}

	release := u.locks.Lock(doctor, req.Date)
	defer release()

	existing, err := u.gatherForSlot(ctx, doctor, req.Date)
	if err != nil {
		return nil, err
	}
	if lo.ContainsBy(existing, func(a entity.Appointment) bool { return a.Occupies(doctor, req.Date, req.Time) }) {
		u.metrics.Booking(metrics.OutcomeConflict)
		u.log.Infof("Slot %s %s for doctor %s already taken", req.Date, req.Time, doctor)
		return nil, ErrSlotConflict
	}

	appointment := entity.Appointment{
		Doctor:      doctor,
		DoctorName:  doctorName,
		Patient:     entity.NewPatientID(session.Profile),
		PatientName: session.Name,
		Date:        req.Date,
		Time:        req.Time,
		Status:      entity.AppointmentStatusScheduled,
		CreatedAt:   u.now().UTC(),
	}

	outcome := metrics.OutcomeCommitted
	if err := u.commitPrimary(ctx, &appointment); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			u.metrics.Booking(metrics.OutcomeConflict)
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		u.log.Warnf("Primary store rejected appointment %d, using fallback list: %+v", appointment.ID, err)
		if fbErr := u.fallback.Append(ctx, appointment); fbErr != nil {
			u.metrics.Booking(metrics.OutcomeFailed)
			u.log.Errorf("Failed to append appointment %d to fallback list: %+v", appointment.ID, fbErr)
			return nil, fmt.Errorf("commit appointment: %w", errors.Join(err, fbErr))
		}
		outcome = metrics.OutcomeFallbackCommitted
	}

	u.metrics.Booking(outcome)
	u.notify(ctx, appointment, outcome == metrics.OutcomeFallbackCommitted)

	u.log.Infof("Appointment booked: id=%d, doctor=%s, date=%s, time=%s, outcome=%s",
		appointment.ID, doctor, appointment.Date, appointment.Time, outcome)

	return &dto.BookingResponse{
		Appointment: *converter.AppointmentToResponse(&appointment),
		Outcome:     outcome,
		Fallback:    outcome == metrics.OutcomeFallbackCommitted,
	}, nil
}

// ListForPatient returns the session patient's appointments from the primary
// store and the fallback list, oldest slot first.
func (u *appointmentUsecase) ListForPatient(ctx context.Context, session entity.Session) (*dto.AppointmentListResponse, error) {
	patient := entity.NewPatientID(session.Profile)
	if patient == "" {
		return nil, ErrNotPatientSession
	}

	appointments, err := u.gather(ctx, []appointmentSource{
		{name: sourcePrimary, load: func(ctx context.Context) ([]entity.Appointment, error) {
			return u.appointmentRepo.FindByPatient(u.store.DB(ctx), patient)
		}},
		u.fallbackSource(func(a *entity.Appointment) bool { return a.Patient == patient }),
	})
	if err != nil {
		return nil, err
	}

	return toAppointmentList(appointments), nil
}

// ListForDoctor resolves the session's doctor by email and returns their
// appointments from the primary store and the fallback list.
func (u *appointmentUsecase) ListForDoctor(ctx context.Context, session entity.Session) (*dto.AppointmentListResponse, error) {
	record, err := u.doctorRepo.FindByEmail(u.store.DB(ctx), session.Profile)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", session.Profile, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrDoctorNotFound
	}
	doctor := record.Identifier()

	appointments, err := u.gather(ctx, []appointmentSource{
		{name: sourcePrimary, load: func(ctx context.Context) ([]entity.Appointment, error) {
			return u.appointmentRepo.FindByDoctor(u.store.DB(ctx), doctor)
		}},
		u.fallbackSource(func(a *entity.Appointment) bool { return a.Doctor == doctor }),
	})
	if err != nil {
		return nil, err
	}

	return toAppointmentList(appointments), nil
}

// Export returns every appointment held by the primary store or the
// fallback list.
func (u *appointmentUsecase) Export(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.gather(ctx, []appointmentSource{
		{name: sourcePrimary, load: func(ctx context.Context) ([]entity.Appointment, error) {
			return u.appointmentRepo.FindAll(u.store.DB(ctx))
		}},
		u.fallbackSource(nil),
	})
	if err != nil {
		return nil, err
	}

	return toAppointmentList(appointments), nil
}

func (u *appointmentUsecase) Subscribe(ctx context.Context) (<-chan broadcast.Notification, error) {
	return u.broadcaster.Subscribe(ctx)
}

// doctorName returns the snapshot name for doctor. A store failure is
// tolerated so the booking can still reach the fallback list.
func (u *appointmentUsecase) doctorName(ctx context.Context, doctor entity.DoctorID) (string, error) {
	key, ok := doctor.Key()
	if !ok {
		return "", ErrDoctorNotFound
	}

	record, err := u.doctorRepo.FindByID(u.store.DB(ctx), key)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		u.log.Warnf("Failed to find doctor %s, booking without name snapshot: %+v", doctor, err)
		return "", nil
	}
	if record == nil {
		return "", ErrDoctorNotFound
	}
	return record.Name, nil
}

func (u *appointmentUsecase) commitPrimary(ctx context.Context, appointment *entity.Appointment) error {
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		appointment.ID = u.ids.next()
		err = u.store.UnitOfWork(ctx, func(tx *gorm.DB) error {
			existing, err := u.appointmentRepo.FindByDoctorAndDate(tx, appointment.Doctor, appointment.Date)
			if err != nil {
				return err
			}
			if lo.ContainsBy(existing, func(a entity.Appointment) bool {
				return a.Occupies(appointment.Doctor, appointment.Date, appointment.Time)
			}) {
				return ErrSlotConflict
			}
			return u.appointmentRepo.Create(tx, appointment)
		})
		if !errors.Is(err, store.ErrDuplicateKey) {
			return err
		}
	}
	return err
}

func (u *appointmentUsecase) notify(ctx context.Context, appointment entity.Appointment, degraded bool) {
	if u.broadcaster == nil {
		return
	}
	err := u.broadcaster.Publish(ctx, broadcast.Notification{
		Type:        broadcast.TypeAppointmentCreated,
		Appointment: appointment,
		Fallback:    degraded,
	})
	if err != nil {
		u.log.Warnf("Failed to broadcast appointment %d: %+v", appointment.ID, err)
	}
}

type appointmentSource struct {
	name string
	load func(ctx context.Context) ([]entity.Appointment, error)
}

// gatherForSlot collects the non-cancelled appointments for doctor/date from
// all three sources.
func (u *appointmentUsecase) gatherForSlot(ctx context.Context, doctor entity.DoctorID, date string) ([]entity.Appointment, error) {
	match := func(a *entity.Appointment) bool {
		return !a.IsCancelled() && a.Doctor == doctor && a.Date == date
	}

	all, err := u.gather(ctx, []appointmentSource{
		{name: sourcePrimary, load: func(ctx context.Context) ([]entity.Appointment, error) {
			return u.appointmentRepo.FindByDoctorAndDate(u.store.DB(ctx), doctor, date)
		}},
		u.fallbackSource(match),
		{name: sourceFixture, load: func(ctx context.Context) ([]entity.Appointment, error) {
			list, err := u.catalog.Appointments(ctx)
			return filterAppointments(list, match), err
		}},
	})
	if err != nil {
		return nil, err
	}
	return filterAppointments(all, match), nil
}

func (u *appointmentUsecase) fallbackSource(match func(*entity.Appointment) bool) appointmentSource {
	return appointmentSource{name: sourceFallback, load: func(ctx context.Context) ([]entity.Appointment, error) {
		list, err := u.fallback.Load(ctx)
		return filterAppointments(list, match), err
	}}
}

// gather loads every source concurrently. A failing source contributes
// nothing; only cancellation of ctx aborts the whole read. Results keep the
// source order and are de-duplicated by id, first source wins. Fixture rows
// without an id are never merged.
func (u *appointmentUsecase) gather(ctx context.Context, sources []appointmentSource) ([]entity.Appointment, error) {
	results := make([][]entity.Appointment, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			list, err := src.load(gctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				u.log.Warnf("Appointment source %s unavailable, treating as empty: %v", src.name, err)
				u.metrics.SourceError(src.name)
				return nil
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	return lo.Filter(lo.Flatten(results), func(a entity.Appointment, _ int) bool {
		if a.ID == 0 {
			return true
		}
		if _, dup := seen[a.ID]; dup {
			return false
		}
		seen[a.ID] = struct{}{}
		return true
	}), nil
}

func filterAppointments(list []entity.Appointment, match func(*entity.Appointment) bool) []entity.Appointment {
	if match == nil {
		return list
	}
	out := make([]entity.Appointment, 0, len(list))
	for i := range list {
		if match(&list[i]) {
			out = append(out, list[i])
		}
	}
	return out
}

func toAppointmentList(appointments []entity.Appointment) *dto.AppointmentListResponse {
	slices.SortStableFunc(appointments, func(a, b entity.Appointment) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time), cmp.Compare(a.ID, b.ID))
	})
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}
}

// appointmentIDs hands out time-based ids in milliseconds, strictly
// increasing within the process.
type appointmentIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func newAppointmentIDs(now func() time.Time) *appointmentIDs {
	return &appointmentIDs{now: now}
}

func (g *appointmentIDs) next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
