package records_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/fabtrack/models"
	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/testutil"
)

func pct(v float64) *float64 { return &v }

func finalizedProject(t *testing.T, svc *records.Services, client string) *models.Project {
	t.Helper()
	ctx := context.Background()
	p, err := svc.Projects.Create(ctx, records.ProjectInput{Client: client})
	require.NoError(t, err)
	p, err = svc.Projects.FinalizeDesign(ctx, p.ID)
	require.NoError(t, err)
	return p
}

func TestOverallProgressScenario(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()
	p := finalizedProject(t, svc, "Acme")

	stages, err := svc.Production.SetStages(ctx, p.ID, records.StageUpdate{
		SheetCutting:      pct(100),
		PlasmaFabrication: pct(50),
		BoxingAssembly:    pct(0),
		QualityChecking:   pct(0),
		Dispatch:          pct(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, stages.Overall())

	overall, err := svc.Production.OverallProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, overall)
}

func TestOverallProgressWithoutRecord(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()
	p := finalizedProject(t, svc, "Acme")

	stages, err := svc.Production.GetStages(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, records.Stages{}, stages)

	overall, err := svc.Production.OverallProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, overall)

	_, err = svc.Production.OverallProgress(ctx, 9999)
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestStagesOverallRounds(t *testing.T) {
	s := records.Stages{SheetCutting: 33.333, PlasmaFabrication: 66.667, BoxingAssembly: 12.5}
	assert.Equal(t, 22.5, s.Overall())

	s = records.Stages{SheetCutting: 10, PlasmaFabrication: 10, BoxingAssembly: 10, QualityChecking: 10, Dispatch: 11}
	assert.Equal(t, 10.2, s.Overall())
}

func TestSetStagesPartialUpdate(t *testing.T) {
	db, svc := testutil.SetupServices(t)
	ctx := context.Background()
	p := finalizedProject(t, svc, "Acme")

	_, err := svc.Production.SetStages(ctx, p.ID, records.StageUpdate{
		SheetCutting:      pct(80),
		PlasmaFabrication: pct(40),
	})
	require.NoError(t, err)

	stages, err := svc.Production.SetStages(ctx, p.ID, records.StageUpdate{Dispatch: pct(10)})
	require.NoError(t, err)
	assert.Equal(t, records.Stages{SheetCutting: 80, PlasmaFabrication: 40, Dispatch: 10}, stages)

	// explicit zero is a value, not an absent field
	stages, err = svc.Production.SetStages(ctx, p.ID, records.StageUpdate{SheetCutting: pct(0)})
	require.NoError(t, err)
	assert.Zero(t, stages.SheetCutting)
	assert.Equal(t, 40.0, stages.PlasmaFabrication)

	var n int64
	require.NoError(t, db.Model(&models.ProductionRecord{}).Where("project_id = ?", p.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "one record per project")
}

func TestSetStagesRejectsOutOfRange(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()
	p := finalizedProject(t, svc, "Acme")

	_, err := svc.Production.SetStages(ctx, p.ID, records.StageUpdate{SheetCutting: pct(50)})
	require.NoError(t, err)

	tests := []struct {
		name string
		u    records.StageUpdate
	}{
		{"above 100", records.StageUpdate{Dispatch: pct(100.5)}},
		{"negative", records.StageUpdate{QualityChecking: pct(-1)}},
		{"one bad among good", records.StageUpdate{SheetCutting: pct(90), BoxingAssembly: pct(250)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Production.SetStages(ctx, p.ID, tt.u)
			assert.ErrorIs(t, err, records.ErrValidation)
		})
	}

	stages, err := svc.Production.GetStages(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, records.Stages{SheetCutting: 50}, stages, "rejected updates write nothing")

	_, err = svc.Production.SetStages(ctx, 9999, records.StageUpdate{SheetCutting: pct(1)})
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestProductionViewOnlyFinalized(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()

	_, err := svc.Projects.Create(ctx, records.ProjectInput{Client: "Draft"})
	require.NoError(t, err)
	first := finalizedProject(t, svc, "First")
	second := finalizedProject(t, svc, "Second")

	_, err = svc.Production.SetStages(ctx, first.ID, records.StageUpdate{
		SheetCutting: pct(100), PlasmaFabrication: pct(100), BoxingAssembly: pct(100),
		QualityChecking: pct(100), Dispatch: pct(100),
	})
	require.NoError(t, err)

	rows, err := svc.Production.ProductionView(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, second.ID, rows[0].Project.ID)
	assert.Zero(t, rows[0].OverallProgress)
	assert.Equal(t, first.ID, rows[1].Project.ID)
	assert.Equal(t, 100.0, rows[1].OverallProgress)
	for _, r := range rows {
		assert.Equal(t, models.DesignCompleted, r.Project.DesignStatus)
	}
}

func TestProductionViewEmpty(t *testing.T) {
	_, svc := testutil.SetupServices(t)

	rows, err := svc.Production.ProductionView(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}
