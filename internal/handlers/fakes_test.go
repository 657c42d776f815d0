package handlers

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"cardiomed/internal/agent"
	"cardiomed/internal/models"
	"cardiomed/internal/repository"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[uint]*models.User)}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uint(len(f.users) + 1)
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) Get(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) List(_ context.Context, _ repository.Page) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b models.User) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (f *fakeUsers) Save(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) EmailTaken(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UsernameTaken(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeReadings struct {
	readings []models.BloodPressureReading
}

func (f *fakeReadings) Create(_ context.Context, reading *models.BloodPressureReading) error {
	reading.ID = uint(len(f.readings) + 1)
	if reading.ReadingTime.IsZero() {
		reading.ReadingTime = time.Now().UTC()
	}
	f.readings = append(f.readings, *reading)
	return nil
}

func (f *fakeReadings) Get(_ context.Context, id uint) (*models.BloodPressureReading, error) {
	for _, r := range f.readings {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeReadings) ListByUser(_ context.Context, userID uint, _ repository.Page) ([]models.BloodPressureReading, error) {
	out := []models.BloodPressureReading{}
	for _, r := range f.readings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReadings) AllByUser(ctx context.Context, userID uint) ([]models.BloodPressureReading, error) {
	return f.ListByUser(ctx, userID, repository.Page{})
}

func (f *fakeReadings) SetPhotoURL(_ context.Context, id uint, url string) error {
	for i := range f.readings {
		if f.readings[i].ID == id {
			f.readings[i].PhotoURL = &url
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeBPReminders backs both the CRUD endpoints and the scheduler
type fakeBPReminders struct {
	mu        sync.Mutex
	nextID    uint
	reminders map[uint]models.BPCheckReminder
}

func newFakeBPReminders() *fakeBPReminders {
	return &fakeBPReminders{reminders: make(map[uint]models.BPCheckReminder)}
}

func (f *fakeBPReminders) CreateBPReminders(_ context.Context, reminders []models.BPCheckReminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range reminders {
		f.nextID++
		reminders[i].ID = f.nextID
		f.reminders[f.nextID] = reminders[i]
	}
	return nil
}

func (f *fakeBPReminders) ListPendingBPReminders(_ context.Context, userID uint, from, to time.Time) ([]models.BPCheckReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BPCheckReminder
	for _, r := range f.reminders {
		if r.UserID == userID && r.IsDue(from, to.Sub(from)) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.BPCheckReminder) int { return a.ReminderDatetime.Compare(b.ReminderDatetime) })
	return out, nil
}

func (f *fakeBPReminders) CompleteBPReminder(_ context.Context, id uint) (*models.BPCheckReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.IsCompleted = true
	f.reminders[id] = r
	return &r, nil
}

func (f *fakeBPReminders) Create(ctx context.Context, reminder *models.BPCheckReminder) error {
	if reminder.BPCategory == "" {
		reminder.BPCategory = models.ManualCategory
	}
	batch := []models.BPCheckReminder{*reminder}
	if err := f.CreateBPReminders(ctx, batch); err != nil {
		return err
	}
	*reminder = batch[0]
	return nil
}

func (f *fakeBPReminders) Get(_ context.Context, id uint) (*models.BPCheckReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeBPReminders) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reminders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeBPReminders) ListByUser(_ context.Context, userID uint, includeCompleted bool) ([]models.BPCheckReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.BPCheckReminder{}
	for _, r := range f.reminders {
		if r.UserID == userID && (includeCompleted || !r.IsCompleted) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeMedications struct {
	reminders []models.MedicationReminder
	batches   int
}

func (f *fakeMedications) Create(_ context.Context, reminder *models.MedicationReminder) error {
	reminder.ID = uint(len(f.reminders) + 1)
	f.reminders = append(f.reminders, *reminder)
	return nil
}

func (f *fakeMedications) CreateBatch(ctx context.Context, reminders []models.MedicationReminder) error {
	f.batches++
	for i := range reminders {
		if err := f.Create(ctx, &reminders[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeMedications) Get(_ context.Context, id uint) (*models.MedicationReminder, error) {
	for _, r := range f.reminders {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMedications) Save(_ context.Context, reminder *models.MedicationReminder) error {
	for i := range f.reminders {
		if f.reminders[i].ID == reminder.ID {
			f.reminders[i] = *reminder
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMedications) Delete(_ context.Context, id uint) error {
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMedications) ListByUser(_ context.Context, userID uint, includeTaken bool) ([]models.MedicationReminder, error) {
	out := []models.MedicationReminder{}
	for _, r := range f.reminders {
		if r.UserID == userID && (includeTaken || !r.IsTaken) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMedications) MarkTaken(ctx context.Context, id uint) (*models.MedicationReminder, error) {
	r, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.IsTaken = true
	return r, f.Save(ctx, r)
}

func (f *fakeMedications) Upcoming(_ context.Context, userID uint, from, to time.Time) ([]models.MedicationReminder, error) {
	var out []models.MedicationReminder
	for _, r := range f.reminders {
		if r.UserID == userID && !r.IsTaken && !r.ScheduleDatetime.Before(from) && r.ScheduleDatetime.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAppointments struct {
	appts []models.DoctorAppointmentReminder
}

func (f *fakeAppointments) Create(_ context.Context, appt *models.DoctorAppointmentReminder) error {
	appt.ID = uint(len(f.appts) + 1)
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeAppointments) Get(_ context.Context, id uint) (*models.DoctorAppointmentReminder, error) {
	for _, a := range f.appts {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointments) Save(_ context.Context, appt *models.DoctorAppointmentReminder) error {
	for i := range f.appts {
		if f.appts[i].ID == appt.ID {
			f.appts[i] = *appt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAppointments) Delete(_ context.Context, id uint) error {
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts = append(f.appts[:i], f.appts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAppointments) ListByUser(_ context.Context, userID uint, includeCompleted bool) ([]models.DoctorAppointmentReminder, error) {
	out := []models.DoctorAppointmentReminder{}
	for _, a := range f.appts {
		if a.UserID == userID && (includeCompleted || !a.IsCompleted) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Complete(ctx context.Context, id uint) (*models.DoctorAppointmentReminder, error) {
	a, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.IsCompleted = true
	return a, f.Save(ctx, a)
}

type fakeWorkouts struct {
	workouts []models.WorkoutReminder
}

func (f *fakeWorkouts) Create(_ context.Context, w *models.WorkoutReminder) error {
	w.ID = uint(len(f.workouts) + 1)
	f.workouts = append(f.workouts, *w)
	return nil
}

func (f *fakeWorkouts) Get(_ context.Context, id uint) (*models.WorkoutReminder, error) {
	for _, w := range f.workouts {
		if w.ID == id {
			copied := w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkouts) Save(_ context.Context, w *models.WorkoutReminder) error {
	for i := range f.workouts {
		if f.workouts[i].ID == w.ID {
			f.workouts[i] = *w
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeWorkouts) Delete(_ context.Context, id uint) error {
	for i := range f.workouts {
		if f.workouts[i].ID == id {
			f.workouts = append(f.workouts[:i], f.workouts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeWorkouts) ListByUser(_ context.Context, userID uint, includeCompleted bool) ([]models.WorkoutReminder, error) {
	out := []models.WorkoutReminder{}
	for _, w := range f.workouts {
		if w.UserID == userID && (includeCompleted || !w.IsCompleted) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkouts) Complete(ctx context.Context, id uint) (*models.WorkoutReminder, error) {
	w, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w.IsCompleted = true
	return w, f.Save(ctx, w)
}

type fakePlaces map[string]models.Location

func (f fakePlaces) ResolvePlace(_ context.Context, placeID string) (*models.Location, error) {
	loc, ok := f[placeID]
	if !ok {
		return nil, errPlaceMissing
	}
	return &loc, nil
}

type fakePhotos struct {
	uploaded []byte
}

func (f *fakePhotos) UploadReadingPhoto(_ context.Context, file io.ReadSeeker, filename string, readingID uint) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploaded = data
	return "https://res.cloudinary.com/demo/image/upload/bp_readings/" + filename, nil
}

type fakeAdvisor struct {
	run *agent.Run
	err error
}

func (f *fakeAdvisor) Advice(_ context.Context, userID uint, message string) (*agent.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.run, nil
}

func (f *fakeAdvisor) Status() agent.AdvisorStatus {
	return agent.AdvisorStatus{Ready: f.err == nil, Provider: "fake", Tools: []string{"get_user_profile"}}
}

type fakeKnowledge struct {
	answer *agent.Answer
	last   agent.AskRequest
}

func (f *fakeKnowledge) Ask(_ context.Context, req agent.AskRequest) (*agent.Answer, error) {
	f.last = req
	if req.Question == "" {
		return nil, agent.ErrEmptyQuestion
	}
	return f.answer, nil
}

func (f *fakeKnowledge) Status() agent.KnowledgeStatus {
	return agent.KnowledgeStatus{Ready: true, Provider: "fake", Documents: []string{"diet.md"}, Chunks: 3}
}
