package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func reportProject() *domain.Project {
	at := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	p := testutil.NewTestProject("Website Redesign",
		testutil.WithCreatedAt(at),
		testutil.WithModules(
			testutil.NewTestModule("Auth",
				testutil.WithModuleStatus(domain.ModuleCompleted),
				testutil.WithOwner("sam"),
				testutil.WithEstimatedHours(12.5),
				testutil.WithParts(domain.PartCompleted, "Login", "Logout"),
			),
			testutil.NewTestModule("Blog", testutil.WithParts(domain.PartInReview, "Editor")),
		),
		testutil.WithChangeRequest("Dark mode", domain.ChangePendingApproval),
	)
	p.Record(domain.ActorSystem, at, "Project %q created", p.Name)
	p.Record(domain.ActorClient, at.Add(time.Hour), "Client approved module %q", "Auth")
	return p
}

func openReport(t *testing.T, p *domain.Project) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, p))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbook_Sheets(t *testing.T) {
	f := openReport(t, reportProject())
	assert.Equal(t, []string{SheetOverview, SheetModules, SheetTasks, SheetTimeline}, f.GetSheetList())
}

func TestWorkbook_Overview(t *testing.T) {
	f := openReport(t, reportProject())
	rows, err := f.GetRows(SheetOverview)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 6)
	assert.Equal(t, []string{"Project", "Website Redesign"}, rows[0])
	assert.Equal(t, []string{"Modules Completed", "1 / 2"}, rows[4])
	assert.Equal(t, []string{"Pending Change Requests", "1"}, rows[5])
}

func TestWorkbook_ModulesAndTasks(t *testing.T) {
	f := openReport(t, reportProject())

	mods, err := f.GetRows(SheetModules)
	require.NoError(t, err)
	require.Len(t, mods, 3)
	assert.Equal(t, "Module", mods[0][0])
	assert.Equal(t, []string{"Auth", "Completed", "sam"}, mods[1][:3])
	assert.Equal(t, "12.5", mods[1][4])
	assert.Equal(t, []string{"2", "2"}, mods[1][5:7])

	tasks, err := f.GetRows(SheetTasks)
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.Equal(t, []string{"Blog", "Editor", "In Review"}, tasks[3])
}

func TestWorkbook_TimelineNewestFirst(t *testing.T) {
	f := openReport(t, reportProject())
	rows, err := f.GetRows(SheetTimeline)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2024-03-04 11:30", "Client", `Client approved module "Auth"`}, rows[1])
	assert.Equal(t, "System", rows[2][1])
}

func TestWorkbook_EmptyProject(t *testing.T) {
	f := openReport(t, testutil.NewTestProject("Empty"))
	rows, err := f.GetRows(SheetModules)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.xlsx")
	require.NoError(t, SaveReport(path, reportProject()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SheetModules)
}

func TestReportFileName(t *testing.T) {
	p := testutil.NewTestProject("Website Redesign!")
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "website-redesign_20240501.xlsx", ReportFileName(p, at))

	p.Name = "***"
	assert.Equal(t, p.ID+"_20240501.xlsx", ReportFileName(p, at))
}
