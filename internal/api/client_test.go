package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@hospital.example", body["email"])
		assert.Equal(t, "secret", body["password"])

		fmt.Fprint(w, `{"success": true, "token": "tok-abc"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	token, err := client.Login("asha@hospital.example", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success": false, "message": "invalid credentials"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login("x@y.example", "wrong")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "invalid credentials", remoteErr.Message)
}

func TestRegisterOmitsHospitalForCommissioner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasHospital := body["hospital_id"]
		assert.False(t, hasHospital, "commissioner registration must not send hospital_id")

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"success": true, "message": "User registered successfully."}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	msg, err := client.Register(RegisterRequest{
		FullName: "R Rao",
		Email:    "rao@bmc.example",
		Password: "pw",
		Role:     "bmc_commissioner",
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully.", msg)
}

func TestHospitals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/hospitals", r.URL.Path)
		fmt.Fprint(w, `{"success": true, "data": [{"id": "h1", "name": "KEM Hospital"}, {"id": "h2", "name": "Sion Hospital"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	hospitals, err := client.Hospitals()
	require.NoError(t, err)
	require.Len(t, hospitals, 2)
	assert.Equal(t, "KEM Hospital", hospitals[0].Name)
}

func TestTasks(t *testing.T) {
	userID := uuid.NewString()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/"+userID, r.URL.Path)
		fmt.Fprint(w, `{"success": true, "data": [{"room_id": "OT-2", "status": "Pending", "assignment_date": "2026-08-30", "notes": "deep clean"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	tasks, err := client.Tasks(userID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "OT-2", tasks[0].RoomID)
	assert.Equal(t, "Pending", tasks[0].Status)
}

func TestSubmitRoomSendsMultipartFields(t *testing.T) {
	photoPath := filepath.Join(t.TempDir(), "after.jpg")
	require.NoError(t, os.WriteFile(photoPath, []byte("jpeg-bytes"), 0644))
	cleanerID := uuid.NewString()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify_room", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "ICU-7", r.FormValue("room_id"))
		assert.Equal(t, cleanerID, r.FormValue("cleaner_id"))

		file, header, err := r.FormFile("after_photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "after.jpg", header.Filename)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"success": true}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.SubmitRoom("ICU-7", photoPath, cleanerID))
}

func TestSubmitRoomMissingPhoto(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	err := client.SubmitRoom("ICU-7", filepath.Join(t.TempDir(), "nope.jpg"), "c1")
	require.Error(t, err)
}

func TestCleanersSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cleaners", r.URL.Path)
		require.Equal(t, "Bearer tok-xyz", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"success": true, "data": [{"id": "c1", "full_name": "Vijay Kumar"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	cleaners, err := client.Cleaners("tok-xyz")
	require.NoError(t, err)
	require.Len(t, cleaners, 1)
	assert.Equal(t, "Vijay Kumar", cleaners[0].FullName)
}

func TestAssignTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req AssignTaskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "WARD-3", req.RoomID)
		assert.Equal(t, "mgr-1", req.AssignedByID)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"success": true, "message": "Task assigned."}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	msg, err := client.AssignTask(AssignTaskRequest{
		RoomID:         "WARD-3",
		CleanerID:      "c1",
		AssignedByID:   "mgr-1",
		AssignmentDate: "2026-08-30",
		Notes:          "spill near bed 4",
	})
	require.NoError(t, err)
	assert.Equal(t, "Task assigned.", msg)
}

func TestPendingRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dashboard", r.URL.Path)
		require.Equal(t, "Bearer tok-mgr", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"success": true, "data": [{"id": 7, "room_id": "OT-2", "cleaner_id": "c1", "cleanliness_status": "Partially Clean", "ai_remarks": "dust near window"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.PendingRecords("tok-mgr")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 7, records[0].ID)
	assert.Equal(t, "Partially Clean", records[0].CleanlinessStatus)
}

func TestDecide(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/approve", r.URL.Path)
		require.Equal(t, "Bearer tok-mgr", r.Header.Get("Authorization"))

		var body struct {
			RecordID  int    `json:"record_id"`
			NewStatus string `json:"new_status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 7, body.RecordID)
		assert.Equal(t, "Rework", body.NewStatus)

		fmt.Fprint(w, `{"success": true, "message": "Record updated."}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	msg, err := client.Decide("tok-mgr", 7, DecisionRework)
	require.NoError(t, err)
	assert.Equal(t, "Record updated.", msg)
}

func TestWeeklyReportFilenameFromDisposition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/report/weekly", r.URL.Path)
		require.Equal(t, "Bearer tok-adm", r.Header.Get("Authorization"))
		w.Header().Set("Content-Disposition", `attachment; filename="hospital-report-2026-08-30.pdf"`)
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	filename, data, err := client.WeeklyReport("tok-adm")
	require.NoError(t, err)
	assert.Equal(t, "hospital-report-2026-08-30.pdf", filename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestWeeklyReportDefaultFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	filename, _, err := client.WeeklyReport("tok-adm")
	require.NoError(t, err)
	assert.Equal(t, "weekly-report.pdf", filename)
}

func TestWeeklyReportServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "Failed to fetch data: timeout"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.WeeklyReport("tok-adm")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Failed to fetch data: timeout", remoteErr.Message)
}
