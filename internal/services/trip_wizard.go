package services

import (
	"errors"
	"strings"
	"time"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

// Wizard steps, in order: branch, truck, driver.
const (
	StepBranch = 1
	StepTruck  = 2
	StepDriver = 3
)

var (
	ErrStepIncomplete = errors.New("current step has no selection")
	ErrFirstStep      = errors.New("already on the first step")
	ErrTripIncomplete = errors.New("branch, truck and driver must all be selected")
	ErrUnknownTruck   = errors.New("selected truck not in the candidate list")
	ErrUnknownDriver  = errors.New("selected driver not in the candidate list")
)

// TripWizard walks branch → truck → driver selection and composes exactly one
// trip-creation payload. Candidate lists are reference data fetched elsewhere;
// the wizard only filters them.
type TripWizard struct {
	step     int
	branch   string // branch code
	truckID  uint
	driverID uint

	trucks  []models.Truck
	drivers []models.Driver

	submitting bool
}

func NewTripWizard(trucks []models.Truck, drivers []models.Driver) *TripWizard {
	return &TripWizard{step: StepBranch, trucks: trucks, drivers: drivers}
}

func (w *TripWizard) Step() int { return w.step }

func (w *TripWizard) Branch() string { return w.branch }

func (w *TripWizard) TruckID() uint { return w.truckID }

func (w *TripWizard) DriverID() uint { return w.driverID }

// SelectBranch records the branch. Picking a different branch invalidates any
// truck/driver already chosen (same cascading-reset rule as the order form).
func (w *TripWizard) SelectBranch(code string) {
	if w.branch == code {
		return
	}
	w.branch = code
	w.truckID = 0
	w.driverID = 0
}

// SelectTruck only accepts a truck from the current candidate list.
func (w *TripWizard) SelectTruck(id uint) error {
	for _, t := range w.AvailableTrucks() {
		if t.ID == id {
			w.truckID = id
			return nil
		}
	}
	return ErrUnknownTruck
}

func (w *TripWizard) SelectDriver(id uint) error {
	for _, d := range w.AvailableDrivers() {
		if d.ID == id {
			w.driverID = id
			return nil
		}
	}
	return ErrUnknownDriver
}

// AvailableTrucks filters the reference list to available trucks of the
// selected branch.
func (w *TripWizard) AvailableTrucks() []models.Truck {
	var out []models.Truck
	for _, t := range w.trucks {
		if t.Available() && (w.branch == "" || t.Branch == w.branch) {
			out = append(out, t)
		}
	}
	return out
}

// AvailableDrivers filters to active drivers not currently on a truck.
func (w *TripWizard) AvailableDrivers() []models.Driver {
	var out []models.Driver
	for _, d := range w.drivers {
		if d.Available() {
			out = append(out, d)
		}
	}
	return out
}

// CanNext reports whether the current step's required selection is set; the
// Next control is disabled otherwise.
func (w *TripWizard) CanNext() bool {
	switch w.step {
	case StepBranch:
		return w.branch != ""
	case StepTruck:
		return w.truckID != 0
	default:
		return false
	}
}

func (w *TripWizard) Next() error {
	if !w.CanNext() {
		return ErrStepIncomplete
	}
	w.step++
	return nil
}

// Previous is always allowed except from the first step.
func (w *TripWizard) Previous() error {
	if w.step == StepBranch {
		return ErrFirstStep
	}
	w.step--
	return nil
}

// CanCreate gates the final submit: all three selections must be set.
func (w *TripWizard) CanCreate() bool {
	return w.branch != "" && w.truckID != 0 && w.driverID != 0
}

// Reset returns the wizard to step 1 with all selections cleared. Called when
// the modal closes or after a successful submit.
func (w *TripWizard) Reset() {
	w.step = StepBranch
	w.branch = ""
	w.truckID = 0
	w.driverID = 0
	w.submitting = false
}

func (w *TripWizard) BeginSubmit() error {
	if w.submitting {
		return ErrSubmitInFlight
	}
	w.submitting = true
	return nil
}

func (w *TripWizard) EndSubmit() { w.submitting = false }

// CreateTripRequest is the wire payload of the trip-creation endpoint.
type CreateTripRequest struct {
	Branch        string    `json:"branch"`
	TruckPlate    string    `json:"truck_plate"`
	TruckModel    string    `json:"truck_model"`
	TruckCapacity float64   `json:"truck_capacity"`
	DriverID      uint      `json:"driver_id"`
	DriverName    string    `json:"driver_name"`
	DriverPhone   string    `json:"driver_phone"`
	CapacityTotal float64   `json:"capacity_total"`
	TripDate      time.Time `json:"trip_date"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
}

// BuildCreateTripRequest resolves the selected ids back to full records and
// composes the payload for the single atomic create call.
func (w *TripWizard) BuildCreateTripRequest(tripDate time.Time, origin, destination string) (CreateTripRequest, error) {
	if !w.CanCreate() {
		return CreateTripRequest{}, ErrTripIncomplete
	}
	var truck *models.Truck
	for i := range w.trucks {
		if w.trucks[i].ID == w.truckID {
			truck = &w.trucks[i]
			break
		}
	}
	if truck == nil {
		return CreateTripRequest{}, ErrUnknownTruck
	}
	var driver *models.Driver
	for i := range w.drivers {
		if w.drivers[i].ID == w.driverID {
			driver = &w.drivers[i]
			break
		}
	}
	if driver == nil {
		return CreateTripRequest{}, ErrUnknownDriver
	}
	return CreateTripRequest{
		Branch:        w.branch,
		TruckPlate:    truck.PlateNumber,
		TruckModel:    truck.Model,
		TruckCapacity: truck.CapacityKg,
		DriverID:      driver.ID,
		DriverName:    driver.Name,
		DriverPhone:   driver.Phone,
		CapacityTotal: truck.CapacityKg,
		TripDate:      tripDate,
		Origin:        origin,
		Destination:   destination,
	}, nil
}

// ErrorField maps a backend rejection message to the form field it most
// likely concerns, so the wizard can highlight it. Best-effort text matching;
// empty string means no specific field.
func ErrorField(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "plate"):
		return "truck_plate"
	case strings.Contains(m, "driver"):
		return "driver_id"
	case strings.Contains(m, "branch"):
		return "branch"
	default:
		return ""
	}
}
