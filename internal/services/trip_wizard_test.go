package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func wizardFixtures() ([]models.Truck, []models.Driver) {
	trucks := []models.Truck{
		{ID: 1, PlateNumber: "KAA 001A", Model: "Isuzu FRR", CapacityKg: 8000, Status: models.TruckAvailable, Branch: "NBO-01"},
		{ID: 2, PlateNumber: "KBB 002B", Model: "Fuso Fighter", CapacityKg: 10000, Status: models.TruckInTransit, Branch: "NBO-01"},
		{ID: 3, PlateNumber: "KCC 003C", Model: "Hino 500", CapacityKg: 12000, Status: models.TruckAvailable, Branch: "MSA-01"},
	}
	drivers := []models.Driver{
		{ID: 10, Name: "Ayesha Noor", Phone: "0700111222", Status: models.DriverActive},
		{ID: 11, Name: "Brian Otieno", Status: models.DriverActive, CurrentTruck: "KBB 002B"},
		{ID: 12, Name: "Carol Wanjiru", Status: models.DriverInactive},
	}
	return trucks, drivers
}

func TestAvailabilityFilters(t *testing.T) {
	trucks, drivers := wizardFixtures()
	w := NewTripWizard(trucks, drivers)

	// no branch selected: all available trucks
	avail := w.AvailableTrucks()
	require.Len(t, avail, 2)

	w.SelectBranch("NBO-01")
	avail = w.AvailableTrucks()
	require.Len(t, avail, 1)
	assert.Equal(t, uint(1), avail[0].ID)

	availDrivers := w.AvailableDrivers()
	require.Len(t, availDrivers, 1)
	assert.Equal(t, uint(10), availDrivers[0].ID)
}

func TestStepGuards(t *testing.T) {
	trucks, drivers := wizardFixtures()
	w := NewTripWizard(trucks, drivers)

	assert.False(t, w.CanNext())
	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	assert.ErrorIs(t, w.Previous(), ErrFirstStep)

	w.SelectBranch("NBO-01")
	require.NoError(t, w.Next())
	assert.Equal(t, StepTruck, w.Step())

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	require.NoError(t, w.SelectTruck(1))
	require.NoError(t, w.Next())
	assert.Equal(t, StepDriver, w.Step())

	require.NoError(t, w.Previous())
	assert.Equal(t, StepTruck, w.Step())
}

func TestSelectTruckRejectsUnavailable(t *testing.T) {
	trucks, drivers := wizardFixtures()
	w := NewTripWizard(trucks, drivers)
	w.SelectBranch("NBO-01")

	assert.ErrorIs(t, w.SelectTruck(2), ErrUnknownTruck) // in transit
	assert.ErrorIs(t, w.SelectTruck(3), ErrUnknownTruck) // wrong branch
	assert.ErrorIs(t, w.SelectDriver(11), ErrUnknownDriver)
	assert.ErrorIs(t, w.SelectDriver(12), ErrUnknownDriver)
}

func TestBranchChangeClearsTruckAndDriver(t *testing.T) {
	trucks, drivers := wizardFixtures()
	w := NewTripWizard(trucks, drivers)
	w.SelectBranch("NBO-01")
	require.NoError(t, w.SelectTruck(1))
	require.NoError(t, w.SelectDriver(10))
	assert.True(t, w.CanCreate())

	w.SelectBranch("MSA-01")
	assert.Zero(t, w.TruckID())
	assert.Zero(t, w.DriverID())
	assert.False(t, w.CanCreate())

	// same-branch re-selection is a no-op
	w.SelectBranch("MSA-01")
	require.NoError(t, w.SelectTruck(3))
	assert.Equal(t, uint(3), w.TruckID())
	w.SelectBranch("MSA-01")
	assert.Equal(t, uint(3), w.TruckID())
}

func TestBuildCreateTripRequest(t *testing.T) {
	trucks, drivers := wizardFixtures()
	w := NewTripWizard(trucks, drivers)

	_, err := w.BuildCreateTripRequest(time.Now(), "Nairobi", "Mombasa")
	assert.ErrorIs(t, err, ErrTripIncomplete)

	w.SelectBranch("NBO-01")
	require.NoError(t, w.SelectTruck(1))
	require.NoError(t, w.SelectDriver(10))

	date := time.Date(2025, 4, 2, 6, 0, 0, 0, time.UTC)
	req, err := w.BuildCreateTripRequest(date, "Nairobi", "Mombasa")
	require.NoError(t, err)
	assert.Equal(t, "NBO-01", req.Branch)
	assert.Equal(t, "KAA 001A", req.TruckPlate)
	assert.Equal(t, "Isuzu FRR", req.TruckModel)
	assert.Equal(t, 8000.0, req.TruckCapacity)
	assert.Equal(t, 8000.0, req.CapacityTotal)
	assert.Equal(t, uint(10), req.DriverID)
	assert.Equal(t, "Ayesha Noor", req.DriverName)
	assert.Equal(t, date, req.TripDate)
}

func TestResetReturnsToInitialState(t *testing.T) {
	trucks, drivers := wizardFixtures()
	w := NewTripWizard(trucks, drivers)
	w.SelectBranch("NBO-01")
	require.NoError(t, w.SelectTruck(1))
	require.NoError(t, w.Next())
	require.NoError(t, w.BeginSubmit())

	w.Reset()
	assert.Equal(t, StepBranch, w.Step())
	assert.Empty(t, w.Branch())
	assert.Zero(t, w.TruckID())
	assert.Zero(t, w.DriverID())
	require.NoError(t, w.BeginSubmit())
}

func TestErrorField(t *testing.T) {
	assert.Equal(t, "truck_plate", ErrorField("a truck with this plate number already exists"))
	assert.Equal(t, "driver_id", ErrorField("Driver is not available"))
	assert.Equal(t, "", ErrorField("something went wrong"))
}
