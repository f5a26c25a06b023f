package openqa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobJSON = `{
  "job": {
    "id": 1234,
    "name": "opensuse-Tumbleweed-DVD-x86_64-Build1-mytest@64bit",
    "result": "failed",
    "clone_id": null,
    "group": "tools/bisect",
    "parent_group": "Development",
    "settings": {"TEST": "mytest", "FOO_TEST_ISSUES": "1,2,3"},
    "parents": {"Chained": [], "Directly chained": [], "Parallel": [11]},
    "children": {"Chained": [12], "Directly chained": [], "Parallel": []}
  }
}`

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/tests/1234/investigation_ajax", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"diff_to_last_good": "-  \"FOO_TEST_ISSUES\": \"1,2\",\n+  \"FOO_TEST_ISSUES\": \"1,2,3\",\n"}`))
	})
	mux.HandleFunc("/tests/99/investigation_ajax", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "No result to compare against"}`))
	})
	mux.HandleFunc("/tests/500/investigation_ajax", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte("internal error"))
	})
	mux.HandleFunc("/tests/501/investigation_ajax", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	})
	mux.HandleFunc("/api/v1/jobs/1234", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobJSON))
	})
	mux.HandleFunc("/api/v1/jobs/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"error_status": 404}`))
	})
	mux.HandleFunc("/api/v1/jobs/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClientInvestigation(t *testing.T) {
	server := newTestServer(t)
	client := NewClient("", time.Second)

	t.Run("Diff gets extracted", func(t *testing.T) {
		diff, err := client.Investigation(context.Background(), server.URL+"/tests/1234")
		require.NoError(t, err)
		assert.Equal(t, "-  \"FOO_TEST_ISSUES\": \"1,2\",\n+  \"FOO_TEST_ISSUES\": \"1,2,3\",\n", diff)
	})
	t.Run("Missing diff is empty", func(t *testing.T) {
		diff, err := client.Investigation(context.Background(), server.URL+"/tests/99")
		require.NoError(t, err)
		assert.Empty(t, diff)
	})
	t.Run("Server error fails", func(t *testing.T) {
		_, err := client.Investigation(context.Background(), server.URL+"/tests/500")
		assert.ErrorContains(t, err, "status 500")
	})
	t.Run("Malformed json fails", func(t *testing.T) {
		_, err := client.Investigation(context.Background(), server.URL+"/tests/501")
		assert.ErrorContains(t, err, "malformed response")
	})
	t.Run("Invalid job url fails", func(t *testing.T) {
		_, err := client.Investigation(context.Background(), server.URL+"/t1234")
		assert.Error(t, err)
	})
}

func TestClientJob(t *testing.T) {
	server := newTestServer(t)

	t.Run("Job metadata gets decoded", func(t *testing.T) {
		client := NewClient("", time.Second)
		job, err := client.Job(context.Background(), server.URL+"/tests/1234")
		require.NoError(t, err)

		assert.Equal(t, 1234, job.ID, "Mismatch in job field")
		assert.Nil(t, job.CloneID, "Mismatch in job field")
		assert.Equal(t, "mytest", job.TestName(), "Mismatch in job field")
		assert.Equal(t, "Development / tools/bisect", job.FullGroup(), "Mismatch in job field")
		assert.Equal(t, []int{11}, job.Parents["Parallel"], "Mismatch in job field")
		assert.Equal(t, []int{12}, job.Children["Chained"], "Mismatch in job field")
	})
	t.Run("Configured host replaces host of url", func(t *testing.T) {
		client := NewClient(server.URL+"/", time.Second)
		job, err := client.Job(context.Background(), "https://openqa.invalid/tests/1234")
		require.NoError(t, err)
		assert.Equal(t, 1234, job.ID)
	})
	t.Run("Missing job fails", func(t *testing.T) {
		client := NewClient("", time.Second)
		_, err := client.Job(context.Background(), server.URL+"/tests/404")
		assert.ErrorContains(t, err, "status 404")
	})
	t.Run("Response without job fails", func(t *testing.T) {
		client := NewClient("", time.Second)
		_, err := client.Job(context.Background(), server.URL+"/tests/7")
		assert.ErrorContains(t, err, "contains no job")
	})
}
