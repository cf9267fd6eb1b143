package routes_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/advdv/bapi/bapp"
	"github.com/advdv/bapi/bapp/bapptest"
	"github.com/advdv/bapi/internal/routes"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startApp(t *testing.T, port int, stage string) (*bapptest.Client, string) {
	t.Helper()

	logDir := t.TempDir()
	bapptest.SetBaseEnv(t, port).Stage(stage).LogDir(logDir)

	app := bapptest.New[bapp.Settings](t, routes.Mount)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return bapptest.NewClient(port), logDir
}

func TestExampleUsers(t *testing.T) {
	client, _ := startApp(t, 18101, "test")
	ctx := context.Background()

	for _, tt := range []struct {
		name   string
		method string
		path   string
		body   any
		want   string
	}{
		{
			name:   "get user",
			method: http.MethodGet, path: "/api/v1/examples/users/1",
			want: `{"code":200,"message":"success","data":{"id":1,"username":"user_1","age":21}}`,
		},
		{
			name:   "get missing user",
			method: http.MethodGet, path: "/api/v1/examples/users/999",
			want: `{"code":404,"message":"用户 999 不存在","data":null}`,
		},
		{
			name:   "get user with invalid id",
			method: http.MethodGet, path: "/api/v1/examples/users/0",
			want: `{"code":422,"message":"user_id: ensure this value is greater than or equal to 1","data":null}`,
		},
		{
			name:   "get user with non-numeric id",
			method: http.MethodGet, path: "/api/v1/examples/users/abc",
			want: `{"code":422,"message":"user_id: value is not a valid integer","data":null}`,
		},
		{
			name:   "create user",
			method: http.MethodPost, path: "/api/v1/examples/users",
			body: map[string]any{"username": "newuser", "age": 25},
			want: `{"code":200,"message":"用户创建成功","data":{"id":100,"username":"newuser","age":25}}`,
		},
		{
			name:   "create user without age",
			method: http.MethodPost, path: "/api/v1/examples/users",
			body: map[string]any{"username": "newuser"},
			want: `{"code":200,"message":"用户创建成功","data":{"id":100,"username":"newuser","age":null}}`,
		},
		{
			name:   "create taken user",
			method: http.MethodPost, path: "/api/v1/examples/users",
			body: map[string]any{"username": "admin", "age": 25},
			want: `{"code":400,"message":"用户名 admin 已被占用","data":null}`,
		},
		{
			name:   "create invalid user",
			method: http.MethodPost, path: "/api/v1/examples/users",
			body: map[string]any{"username": "ab", "age": 200},
			want: `{"code":422,"message":"username: ensure this value has at least 3 characters; age: ensure this value is less than or equal to 150","data":null}`,
		},
		{
			name:   "delete without token",
			method: http.MethodDelete, path: "/api/v1/examples/users/5",
			want: `{"code":401,"message":"未授权，请提供 token 参数","data":null}`,
		},
		{
			name:   "delete with wrong token",
			method: http.MethodDelete, path: "/api/v1/examples/users/5?token=wrong",
			want: `{"code":401,"message":"token 无效","data":null}`,
		},
		{
			name:   "delete user",
			method: http.MethodDelete, path: "/api/v1/examples/users/5?token=valid_token",
			want: `{"code":200,"message":"用户删除成功","data":null}`,
		},
		{
			name:   "delete missing user",
			method: http.MethodDelete, path: "/api/v1/examples/users/999?token=valid_token",
			want: `{"code":404,"message":"用户 999 不存在","data":null}`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Do(ctx, tt.method, tt.path, tt.body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(resp.Body))
		})
	}
}

func TestHealthAndStubs(t *testing.T) {
	client, _ := startApp(t, 18102, "test")
	ctx := context.Background()

	for _, tt := range []struct {
		method string
		path   string
		body   any
		want   string
	}{
		{http.MethodGet, "/api/v1/health", nil, `{"code":200,"message":"ok","data":null}`},
		{http.MethodPost, "/api/v1/health", nil, `{"code":200,"message":"ok","data":null}`},
		{http.MethodPost, "/api/v1/eval_single_image", map[string]any{"image": "https://example.com/a.png"}, `{"code":200,"message":"success","data":null}`},
		{http.MethodPost, "/api/v1/eval_single_image", map[string]any{}, `{"code":422,"message":"image: field required","data":null}`},
		{http.MethodPost, "/api/v1/eval_batch_image", nil, `{"code":200,"message":"success","data":null}`},
		{
			http.MethodPost, "/api/v1/analyze_answers",
			[]map[string]any{{"title": "1+1", "ans": "2", "userAns": "3", "parse": "sum"}},
			`{"code":200,"message":"success","data":null}`,
		},
		{
			http.MethodPost, "/api/v1/analyze_answers",
			[]map[string]any{{"title": "1+1", "ans": "2", "parse": "sum"}},
			`{"code":422,"message":"0.userAns: field required","data":null}`,
		},
		{http.MethodGet, "/api/v1/nope", nil, `{"code":404,"message":"Not Found","data":null}`},
		{http.MethodPut, "/api/v1/health", nil, `{"code":405,"message":"Method Not Allowed","data":null}`},
		{http.MethodGet, "/api/v1/examples/boom", nil, `{"code":404,"message":"Not Found","data":null}`},
		{http.MethodGet, "/api/v1//health", nil, `{"code":404,"message":"Not Found","data":null}`},
	} {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := client.Do(ctx, tt.method, tt.path, tt.body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(resp.Body))
			assert.NotEmpty(t, resp.TraceID())
		})
	}
}

func TestTraceHeader(t *testing.T) {
	client, logDir := startApp(t, 18103, "test")
	ctx := context.Background()

	t.Run("fresh identifiers", func(t *testing.T) {
		first, err := client.Do(ctx, http.MethodGet, "/api/v1/health", nil)
		require.NoError(t, err)
		second, err := client.Do(ctx, http.MethodGet, "/api/v1/health", nil)
		require.NoError(t, err)

		_, err = uuid.Parse(first.TraceID())
		require.NoError(t, err)
		assert.NotEqual(t, first.TraceID(), second.TraceID())
	})

	t.Run("echo", func(t *testing.T) {
		resp, err := client.Do(ctx, http.MethodGet, "/api/v1/examples/users/1", nil, "traceId", "caller-trace-1")
		require.NoError(t, err)
		assert.Equal(t, "caller-trace-1", resp.TraceID())
	})

	t.Run("echo alias", func(t *testing.T) {
		resp, err := client.Do(ctx, http.MethodGet, "/api/v1/examples/users/1", nil, "trace-id", "caller-trace-2")
		require.NoError(t, err)
		assert.Equal(t, "caller-trace-2", resp.TraceID())
	})

	t.Run("echo on business errors", func(t *testing.T) {
		resp, err := client.Do(ctx, http.MethodGet, "/api/v1/examples/users/999", nil, "traceId", "caller-trace-3")
		require.NoError(t, err)
		assert.Equal(t, int64(404), resp.Code())
		assert.Equal(t, "caller-trace-3", resp.TraceID())
	})

	t.Run("log lines carry the identifier", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(logDir, "app.log"))
		require.NoError(t, err)

		var lines []string
		for _, line := range strings.Split(string(data), "\n") {
			if strings.Contains(line, "caller-trace-3") {
				lines = append(lines, line)
			}
		}

		require.Len(t, lines, 4, "entry, handler, mapping and exit")
		assert.Contains(t, lines[0], "GET /api/v1/examples/users/999 | Client: ")
		assert.Contains(t, lines[1], "user not found")
		assert.Contains(t, lines[2], "API exception")
		assert.Contains(t, lines[3], "duration_ms")
	})
}

func TestIdempotentReads(t *testing.T) {
	client, _ := startApp(t, 18104, "test")
	ctx := context.Background()

	for _, path := range []string{"/api/v1/examples/users/1", "/api/v1/examples/users/999", "/api/v1/health"} {
		first, err := client.Do(ctx, http.MethodGet, path, nil)
		require.NoError(t, err)
		second, err := client.Do(ctx, http.MethodGet, path, nil)
		require.NoError(t, err)

		assert.Equal(t, first.Body, second.Body, path)
	}
}

func TestUnclassifiedFaults(t *testing.T) {
	t.Run("dev shows the error", func(t *testing.T) {
		client, logDir := startApp(t, 18105, "dev")

		resp, err := client.Do(context.Background(), http.MethodGet, "/api/v1/examples/boom", nil, "traceId", "boom-trace")
		require.NoError(t, err)
		assert.JSONEq(t, `{"code":500,"message":"panic: boom","data":null}`, string(resp.Body))
		assert.Equal(t, "boom-trace", resp.TraceID())

		data, err := os.ReadFile(filepath.Join(logDir, "error.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "unhandled exception")
		assert.Contains(t, string(data), "boom-trace")
	})

	t.Run("prod does not serve the demo", func(t *testing.T) {
		client, _ := startApp(t, 18106, "prod")

		resp, err := client.Do(context.Background(), http.MethodGet, "/api/v1/examples/boom", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(404), resp.Code())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	client, _ := startApp(t, 18107, "test")
	ctx := context.Background()

	_, err := client.Do(ctx, http.MethodGet, "/api/v1/health", nil)
	require.NoError(t, err)

	resp, err := client.Do(ctx, http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), `http_requests_total{method="GET",outcome="ok",route="GET /api/v1/health",service="test",status="200"} 1`)
}
