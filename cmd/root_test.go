package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pb33f/jobific/config"
	"github.com/pb33f/jobific/sheet"
	"github.com/pb33f/jobific/work24"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsXML = `<?xml version="1.0" encoding="UTF-8"?>
<wantedRoot>
  <total>2</total>
  <wanted>
    <wantedAuthNo>K100</wantedAuthNo>
    <company>한빛테크</company>
    <title>백엔드 개발자 채용</title>
    <sal>연봉 4000만원 이상</sal>
    <region>서울 강남구</region>
    <holidayTpNm>주5일근무</holidayTpNm>
  </wanted>
  <wanted>
    <wantedAuthNo>K200</wantedAuthNo>
    <company>Beta Labs</company>
    <title>QA 엔지니어</title>
    <region>부산 해운대구</region>
  </wanted>
</wantedRoot>`

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// isolateEnv keeps the developer's environment out of config resolution.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvAuthKey, config.EnvEndpoint, config.EnvWorkbook, config.EnvPageSize} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeWorkbook(t *testing.T, rows int, inject ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "company.xlsx")
	_, err := sheet.GenerateToFile(path, sheet.GenerateOptions{
		RowCount:    rows,
		Seed:        7,
		InjectNames: inject,
	})
	require.NoError(t, err)
	return path
}

func TestValidateWorkbook(t *testing.T) {
	dir := t.TempDir()
	dirWithExt := filepath.Join(dir, "folder.xlsx")
	require.NoError(t, os.Mkdir(dirWithExt, 0o755))
	valid := writeWorkbook(t, 3)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty", "", "required"},
		{"wrong extension", filepath.Join(dir, "data.csv"), "unsupported workbook type"},
		{"missing", filepath.Join(dir, "absent.xlsx"), "does not exist"},
		{"directory", dirWithExt, "directory"},
		{"valid", valid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkbook(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompaniesPlain(t *testing.T) {
	isolateEnv(t)
	cfg := writeConfig(t, "page_size: 10\n")
	workbook := writeWorkbook(t, 25, "Needle Corp")

	out, err := executeCommand(t, "companies", workbook, "--plain", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "-- page 1/3 (25 results) --")

	out, err = executeCommand(t, "companies", workbook, "--plain", "--config", cfg, "--page", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "21. ")
	assert.Contains(t, out, "-- page 3/3 (25 results) --")

	out, err = executeCommand(t, "companies", workbook, "--plain", "--config", cfg, "--search", "needle")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Needle Corp | ")
	assert.Contains(t, out, "(1 results)")
}

func TestCompaniesPlain_PageSizeFlag(t *testing.T) {
	isolateEnv(t)
	cfg := writeConfig(t, "page_size: 10\n")
	workbook := writeWorkbook(t, 25)

	out, err := executeCommand(t, "companies", workbook, "--plain", "--config", cfg, "--page-size", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "-- page 1/5 (25 results) --")
}

func TestCompaniesPlain_Errors(t *testing.T) {
	isolateEnv(t)
	cfg := writeConfig(t, "page_size: 10\n")
	workbook := writeWorkbook(t, 5)

	_, err := executeCommand(t, "companies", workbook, "--plain", "--config", cfg, "--page", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = executeCommand(t, "companies", workbook, "--plain", "--config", cfg, "--city", "강남구")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--city requires --province")

	_, err = executeCommand(t, "companies", filepath.Join(t.TempDir(), "nope.xlsx"), "--plain", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid workbook")

	_, err = executeCommand(t, "companies", workbook, "--plain", "--config", cfg, "--page-size", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolateEnv(t)
	workbook := writeWorkbook(t, 5)

	_, err := executeCommand(t, "companies", workbook, "--plain", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestJobsPlain(t *testing.T) {
	isolateEnv(t)

	var authKey atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authKey.Store(r.URL.Query().Get("authKey"))
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(jobsXML))
	}))
	defer srv.Close()

	t.Setenv(config.EnvAuthKey, "env-key")
	t.Setenv(config.EnvEndpoint, srv.URL)
	cfg := writeConfig(t, "jobs:\n  requests_per_second: 0\n")

	out, err := executeCommand(t, "jobs", "--plain", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "env-key", authKey.Load())
	assert.Contains(t, out, "1. 백엔드 개발자 채용 | 한빛테크 | 서울 강남구 | 연봉 4000만원 이상 | 주5일근무\n")
	assert.Contains(t, out, "2. QA 엔지니어 | Beta Labs | 부산 해운대구 | 급여 정보 없음 | 고용형태 정보 없음\n")

	out, err = executeCommand(t, "jobs", "--plain", "--config", cfg, "--region", "부산")
	require.NoError(t, err)
	assert.Contains(t, out, "1. QA 엔지니어")
	assert.Contains(t, out, "(1 results)")
}

func TestJobsMissingAuthKey(t *testing.T) {
	isolateEnv(t)
	cfg := writeConfig(t, "page_size: 10\n")

	_, err := executeCommand(t, "jobs", "--plain", "--config", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, work24.ErrMissingAuthKey)
	assert.Contains(t, err.Error(), config.EnvAuthKey)
}

func TestGenerateCommand(t *testing.T) {
	isolateEnv(t)
	cfg := writeConfig(t, "page_size: 10\n")
	output := filepath.Join(t.TempDir(), "nested", "gen.xlsx")

	out, err := executeCommand(t, "generate", "--config", cfg, "-n", "12", "-o", output, "-i", "Acme", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated workbook: "+output)
	assert.Contains(t, out, "Total rows: 12")
	assert.Contains(t, out, "'Acme'")
	assert.NoError(t, ValidateWorkbook(output))

	_, err = executeCommand(t, "generate", "--config", cfg, "-n", "0")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	isolateEnv(t)
	cfg := writeConfig(t, "page_size: 10\n")

	out, err := executeCommand(t, "version", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
}
