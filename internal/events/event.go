package events

import (
	"fmt"

	pb "github.com/dmehra2102/prod-golang-projects/patient-service/gen/patient/events/v1"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
)

type EventType string

const (
	PatientCreated EventType = "PATIENT_CREATED"
	PatientUpdated EventType = "PATIENT_UPDATED"
)

// PatientEvent announces a change to a patient record on the event stream.
type PatientEvent struct {
	PatientID uuid.UUID
	Name      string
	Email     string
	Type      EventType
}

// Key is the partition key. Events for one patient land on one partition.
func (e PatientEvent) Key() string {
	return e.PatientID.String()
}

// Encode returns the patient.events.PatientEvent protobuf bytes.
func (e PatientEvent) Encode() ([]byte, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(&pb.PatientEvent{
		PatientId: e.PatientID.String(),
		Name:      e.Name,
		Email:     e.Email,
		EventType: string(e.Type),
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling patient event: %w", err)
	}
	return b, nil
}
