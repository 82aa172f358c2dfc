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

func TestCreateEmployeeWithLogin(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()

	e, err := svc.Employees.Create(ctx, records.EmployeeInput{
		Name:        "Ravi Kumar",
		Designation: "Site Engineer",
		Username:    "ravi",
		Password:    "ravi-pass",
	})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.Equal(t, "ravi", e.Username)

	cred, err := svc.Credentials.Authenticate(ctx, "ravi", "ravi-pass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, cred.Role)
}

func TestCreateEmployeeDuplicateUsernameRollsBack(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()

	_, err := svc.Employees.Create(ctx, records.EmployeeInput{Name: "Ravi", Username: "ravi", Password: "ravi-pass"})
	require.NoError(t, err)

	before, err := svc.Employees.Count(ctx)
	require.NoError(t, err)

	_, err = svc.Employees.Create(ctx, records.EmployeeInput{Name: "Ravi Again", Username: "ravi", Password: "other-pass"})
	require.ErrorIs(t, err, records.ErrDuplicate)

	after, err := svc.Employees.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	users, err := svc.Credentials.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)
}

func TestCreateEmployeeBadPasswordRollsBack(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()

	_, err := svc.Employees.Create(ctx, records.EmployeeInput{Name: "Meena", Username: "meena", Password: "x"})
	require.ErrorIs(t, err, records.ErrValidation)

	n, err := svc.Employees.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEmployeeCRUD(t *testing.T) {
	_, svc := testutil.SetupServices(t)
	ctx := context.Background()

	_, err := svc.Employees.Create(ctx, records.EmployeeInput{})
	assert.ErrorIs(t, err, records.ErrValidation)

	zara, err := svc.Employees.Create(ctx, records.EmployeeInput{Name: "Zara", Username: "zara", Password: "zara-pass"})
	require.NoError(t, err)
	arun, err := svc.Employees.Create(ctx, records.EmployeeInput{Name: "Arun"})
	require.NoError(t, err)

	names, err := svc.Employees.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arun", "Zara"}, names)

	list, err := svc.Employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, arun.ID, list[0].ID)

	updated, err := svc.Employees.Update(ctx, zara.ID, records.EmployeeInput{Name: "Zara K", Designation: "Supervisor", Username: "changed"})
	require.NoError(t, err)
	assert.Equal(t, "Zara K", updated.Name)
	assert.Equal(t, "zara", updated.Username, "username is fixed after creation")

	require.NoError(t, svc.Employees.Delete(ctx, zara.ID))
	_, err = svc.Employees.Get(ctx, zara.ID)
	assert.ErrorIs(t, err, records.ErrNotFound)
	assert.ErrorIs(t, svc.Employees.Delete(ctx, zara.ID), records.ErrNotFound)

	_, err = svc.Credentials.Authenticate(ctx, "zara", "zara-pass")
	assert.NoError(t, err, "credential outlives the employee record")
}
