package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardiomed/internal/agent"
	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
	"cardiomed/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errPlaceMissing = services.ErrPlaceNotFound

var testNow = time.Date(2025, 6, 2, 10, 20, 30, 0, time.UTC)

type testEnv struct {
	router       *gin.Engine
	users        *fakeUsers
	readings     *fakeReadings
	bpReminders  *fakeBPReminders
	medications  *fakeMedications
	appointments *fakeAppointments
	photos       *fakePhotos
	advisor      *fakeAdvisor
	knowledge    *fakeKnowledge
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users: newFakeUsers(models.User{
			ID: 1, Username: "ada", Email: "ada@example.com", FullName: "Ada Lovelace", IsActive: true,
		}),
		readings:     &fakeReadings{},
		bpReminders:  newFakeBPReminders(),
		medications:  &fakeMedications{},
		appointments: &fakeAppointments{},
		photos:       &fakePhotos{},
		advisor: &fakeAdvisor{run: &agent.Run{
			ID: "run-1", Status: agent.RunCompleted, Output: "Nice work this week!", Steps: 2,
		}},
		knowledge: &fakeKnowledge{answer: &agent.Answer{
			Status: agent.RunCompleted, Answer: "Limit salt.", Sources: []string{"diet.md"}, RunID: "run-2",
		}},
	}

	scheduler := bpreminder.NewScheduler(env.bpReminders, zap.NewNop()).
		WithClock(func() time.Time { return testNow })

	h := New(Deps{
		Users:        env.users,
		Readings:     env.readings,
		BPReminders:  env.bpReminders,
		Scheduler:    scheduler,
		Medications:  env.medications,
		Appointments: env.appointments,
		Workouts:     &fakeWorkouts{},
		Places: fakePlaces{"clinic-1": {
			PlaceID: "clinic-1", Name: "Heart Clinic", FormattedAddress: "1 Main St", Latitude: 1.5, Longitude: 2.5,
		}},
		Photos:    env.photos,
		Advisor:   env.advisor,
		Knowledge: env.knowledge,
	}, zap.NewNop())

	env.router = gin.New()
	env.router.Use(RequestID())
	h.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func validUser() map[string]interface{} {
	return map[string]interface{}{
		"username":  "grace",
		"email":     "grace@example.com",
		"password":  "cobol1959",
		"full_name": "Grace Hopper",
		"age":       70,
		"gender":    "female",
		"height":    160,
		"weight":    60,
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users", validUser())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	decode(t, w, &user)
	assert.Equal(t, "grace", user.Username)
	assert.NotContains(t, w.Body.String(), "cobol1959")

	stored, err := env.users.Get(t.Context(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "cobol1959", stored.HashedPassword)
	assert.True(t, strings.HasPrefix(stored.HashedPassword, "$2"))
}

func TestCreateUserConflicts(t *testing.T) {
	env := newTestEnv(t)

	body := validUser()
	body["email"] = "ada@example.com"
	w := env.do(t, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")

	body = validUser()
	body["username"] = "ada"
	w = env.do(t, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)

	body := validUser()
	body["password"] = "lettersonly"
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/users", body).Code)

	body = validUser()
	body["age"] = 150
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/users", body).Code)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/users/1", map[string]interface{}{"target_systolic": 130})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	decode(t, w, &user)
	assert.Equal(t, 130, user.TargetSystolic)
	assert.Equal(t, "Ada Lovelace", user.FullName)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/users/99", map[string]interface{}{}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/users/abc", nil).Code)
}

func TestCreateReading(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/bp/readings?user_id=1", map[string]interface{}{
		"systolic": 142, "diastolic": 91, "pulse": 72,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reading models.BloodPressureReading
	decode(t, w, &reading)
	assert.Equal(t, "Hypertension Stage 2", reading.Interpretation)
	assert.Equal(t, uint(1), reading.UserID)
}

func TestCreateReadingRejectsImplausibleValues(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]map[string]interface{}{
		"Invalid systolic reading":  {"systolic": 260, "diastolic": 80, "pulse": 70},
		"Invalid diastolic reading": {"systolic": 120, "diastolic": 30, "pulse": 70},
		"Invalid pulse reading":     {"systolic": 120, "diastolic": 80, "pulse": 250},
	}
	for msg, body := range cases {
		w := env.do(t, http.MethodPost, "/bp/readings?user_id=1", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), msg)
	}

	w := env.do(t, http.MethodPost, "/bp/readings?user_id=9", map[string]interface{}{
		"systolic": 120, "diastolic": 80, "pulse": 70,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/bp/readings", map[string]interface{}{
		"systolic": 120, "diastolic": 80, "pulse": 70,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadingStatsAndExport(t *testing.T) {
	env := newTestEnv(t)
	for _, r := range [][2]int{{118, 76}, {150, 95}} {
		w := env.do(t, http.MethodPost, "/bp/readings?user_id=1", map[string]interface{}{
			"systolic": r[0], "diastolic": r[1], "pulse": 70,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(t, http.MethodGet, "/bp/stats/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.ReadingStats
	decode(t, w, &stats)
	assert.Equal(t, 2, stats.TotalReadings)
	assert.Equal(t, 1, stats.Categories["stage_2"])

	w = env.do(t, http.MethodGet, "/bp/export/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bp_readings_ada_")
	assert.NotZero(t, w.Body.Len())
}

func TestUploadReadingPhoto(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.readings.Create(t.Context(), &models.BloodPressureReading{UserID: 1, Systolic: 120, Diastolic: 80, Pulse: 60}))

	upload := func(filename string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/bp/reading/1/photo", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	w := upload("monitor.png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "fake image bytes", string(env.photos.uploaded))
	require.NotNil(t, env.readings.readings[0].PhotoURL)
	assert.Contains(t, *env.readings.readings[0].PhotoURL, "monitor.png")

	w = upload("monitor.gif")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBPScheduleGenerate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/reminders/bp-schedule", map[string]interface{}{
		"user_id": 1, "systolic": 145, "diastolic": 92,
		"preferred_morning_time": "06:30", "preferred_evening_time": "21:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.BPScheduleResponse
	decode(t, w, &resp)
	assert.Equal(t, "stage_2", resp.Category)
	assert.Equal(t, 14, resp.TotalReminders)
	assert.Len(t, resp.Reminders, 14)
	assert.False(t, resp.Urgent)
	assert.NotZero(t, resp.Reminders[0].ID)
	assert.Len(t, env.bpReminders.reminders, 14)
}

func TestBPScheduleCrisis(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/reminders/bp-schedule", map[string]interface{}{
		"user_id": 1, "systolic": 185, "diastolic": 100, "preferred_morning_time": "garbage",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.BPScheduleResponse
	decode(t, w, &resp)
	assert.True(t, resp.Urgent)
	assert.Equal(t, 0, resp.TotalReminders)
	assert.NotNil(t, resp.Reminders)
	assert.Empty(t, resp.Reminders)
	assert.Empty(t, env.bpReminders.reminders)
}

func TestBPScheduleAcceptsZeroComponent(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		systolic, diastolic int
		category            string
		total               int
		urgent              bool
	}{
		{180, 0, "hypertensive_crisis", 0, true},
		{140, 0, "stage_2", 14, false},
		{0, 0, "normal", 4, false},
	}
	for _, tc := range cases {
		w := env.do(t, http.MethodPost, "/reminders/bp-preview", map[string]interface{}{
			"user_id": 1, "systolic": tc.systolic, "diastolic": tc.diastolic,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp models.BPScheduleResponse
		decode(t, w, &resp)
		assert.Equal(t, tc.category, resp.Category)
		assert.Equal(t, tc.total, resp.TotalReminders)
		assert.Equal(t, tc.urgent, resp.Urgent)
	}

	w := env.do(t, http.MethodPost, "/reminders/bp-preview", map[string]interface{}{
		"user_id": 1, "systolic": 140,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Diastolic")
}

func TestBPSchedulePreviewErrors(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/reminders/bp-preview", map[string]interface{}{
		"user_id": 1, "systolic": 135, "diastolic": 85, "preferred_morning_time": "7am",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/reminders/bp-preview", map[string]interface{}{
		"user_id": 1, "systolic": 150, "diastolic": 85,
		"preferred_morning_time": "08:00", "preferred_evening_time": "08:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/reminders/bp-preview", map[string]interface{}{
		"user_id": 1, "systolic": 135, "diastolic": 85,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BPScheduleResponse
	decode(t, w, &resp)
	assert.Equal(t, 7, resp.TotalReminders)
	assert.Equal(t, uint(1), resp.Reminders[0].ID)
	assert.Empty(t, env.bpReminders.reminders)
}

func TestBPUpcomingAndComplete(t *testing.T) {
	env := newTestEnv(t)
	soon := testNow.Add(2 * time.Hour)
	later := testNow.Add(30 * time.Hour)
	require.NoError(t, env.bpReminders.CreateBPReminders(t.Context(), []models.BPCheckReminder{
		{UserID: 1, ReminderDatetime: soon, BPCategory: "stage_1"},
		{UserID: 1, ReminderDatetime: later, BPCategory: "stage_1"},
	}))

	w := env.do(t, http.MethodGet, "/reminders/bp-upcoming/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Upcoming []models.BPCheckReminder `json:"upcoming_bp_reminders"`
	}
	decode(t, w, &body)
	require.Len(t, body.Upcoming, 1)
	assert.True(t, body.Upcoming[0].ReminderDatetime.Equal(soon))

	w = env.do(t, http.MethodGet, "/reminders/bp-upcoming/1?hours=48", nil)
	decode(t, w, &body)
	assert.Len(t, body.Upcoming, 2)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/reminders/bp-upcoming/1?hours=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/reminders/bp-upcoming/1?hours=3000000", nil).Code)

	for i := 0; i < 2; i++ {
		w = env.do(t, http.MethodPost, "/reminders/bp-reminder/1/complete", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.True(t, env.bpReminders.reminders[1].IsCompleted)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/reminders/bp-reminder/99/complete", nil).Code)

	w = env.do(t, http.MethodGet, "/reminders/bp-upcoming/1?hours=48", nil)
	decode(t, w, &body)
	assert.Len(t, body.Upcoming, 1)
}

func TestManualBPReminderCRUD(t *testing.T) {
	env := newTestEnv(t)
	at := testNow.Add(24 * time.Hour)

	w := env.do(t, http.MethodPost, "/reminders/bp-reminder?user_id=1", map[string]interface{}{
		"reminder_datetime": at,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.BPCheckReminder
	decode(t, w, &created)
	assert.Equal(t, models.ManualCategory, created.BPCategory)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/reminders/bp-reminder/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/reminders/bp-reminder/1", nil).Code)
}

func TestBPReminderCannotBeRewritten(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/reminders/bp-schedule", map[string]interface{}{
		"user_id": 1, "systolic": 145, "diastolic": 95,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	before := env.bpReminders.reminders[1]

	w = env.do(t, http.MethodPut, "/reminders/bp-reminder/1", map[string]interface{}{
		"reminder_datetime": "2030-01-01T00:00:00Z", "bp_category": "normal",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	after := env.bpReminders.reminders[1]
	assert.True(t, before.ReminderDatetime.Equal(after.ReminderDatetime))
	assert.Equal(t, "stage_2", after.BPCategory)

	w = env.do(t, http.MethodPost, "/reminders/bp-reminder/1/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.bpReminders.reminders[1].IsCompleted)
	assert.True(t, before.ReminderDatetime.Equal(env.bpReminders.reminders[1].ReminderDatetime))
}

func TestMedicationSchedule(t *testing.T) {
	env := newTestEnv(t)
	first := time.Now().UTC().Add(time.Hour)

	w := env.do(t, http.MethodPost, "/reminders/medication-schedule", map[string]interface{}{
		"user_id": 1,
		"name":    "Amlodipine",
		"dosage":  "5mg",
		"schedule": []map[string]interface{}{
			{"datetime": first, "dosage": "1 tablet"},
			{"datetime": first.Add(24 * time.Hour), "dosage": "1 tablet"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, env.medications.batches)
	assert.Len(t, env.medications.reminders, 2)

	w = env.do(t, http.MethodPost, "/reminders/medication/1/taken", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/reminders/medications/1?include_taken=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.MedicationReminder
	decode(t, w, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(2), pending[0].ID)

	w = env.do(t, http.MethodGet, "/reminders/medication-upcoming/1?hours=48", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upcoming_reminders"`)

	w = env.do(t, http.MethodGet, "/reminders/medication-upcoming/1?hours=3000000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/reminders/medication-schedule", map[string]interface{}{
		"user_id": 1, "name": "Amlodipine", "schedule": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorAppointmentLocation(t *testing.T) {
	env := newTestEnv(t)
	at := time.Now().UTC().Add(72 * time.Hour)

	w := env.do(t, http.MethodPost, "/reminders/doctor-appointment?user_id=1", map[string]interface{}{
		"appointment_datetime": at, "doctor_name": "Dr. Heart", "place_id": "clinic-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt models.DoctorAppointmentReminder
	decode(t, w, &appt)
	require.NotNil(t, appt.Location)
	assert.Equal(t, "Heart Clinic", appt.Location.Name)

	w = env.do(t, http.MethodPost, "/reminders/doctor-appointment?user_id=1", map[string]interface{}{
		"appointment_datetime": at, "doctor_name": "Dr. Heart", "place_id": "nowhere",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/reminders/doctor-appointment/1/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.appointments.appts[0].IsCompleted)
}

func TestWorkoutValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/reminders/workout?user_id=1", map[string]interface{}{
		"workout_datetime": testNow, "workout_type": "swimming", "duration_minutes": 30,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/reminders/workout?user_id=1", map[string]interface{}{
		"workout_datetime": testNow, "workout_type": "walking", "duration_minutes": 30,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHealthAdvisorEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health-advisor/advice/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "Nice work this week!", body["advisor_response"])
	assert.Equal(t, defaultCheckInMessage, body["request_message"])

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/health-advisor/advice",
		map[string]interface{}{"user_id": 9}).Code)

	env.advisor.run = &agent.Run{ID: "run-3", Status: agent.RunFailed, Error: "step limit"}
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodGet, "/health-advisor/advice/1", nil).Code)

	env.advisor.err = agent.ErrNotInitialized
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodGet, "/health-advisor/advice/1", nil).Code)

	w = env.do(t, http.MethodGet, "/health-advisor/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tools_loaded":1`)
}

func TestKnowledgeEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/knowledge-agent/ask", map[string]interface{}{
		"question": "How much salt?", "user_id": 1, "include_user_context": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.knowledge.last.IncludeUserContext)
	require.NotNil(t, env.knowledge.last.UserID)
	assert.Equal(t, uint(1), *env.knowledge.last.UserID)
	assert.Contains(t, w.Body.String(), "diet.md")

	w = env.do(t, http.MethodGet, "/knowledge-agent/ask?question=What+is+stage+1%3F", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "What is stage 1?", env.knowledge.last.Question)
	assert.Nil(t, env.knowledge.last.UserID)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/knowledge-agent/ask", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/knowledge-agent/ask?question=hi&user_id=42", nil).Code)

	w = env.do(t, http.MethodGet, "/knowledge-agent/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
}

func TestOptionalServicesUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(Deps{Users: newFakeUsers(models.User{ID: 1})}, zap.NewNop())
	router := gin.New()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/health-advisor/advice/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/knowledge-agent/status", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "not_configured")
}
