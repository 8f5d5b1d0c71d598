package domain

import "time"

// RequestStatus enumerates lifecycle states for service requests.
//
// There is no transition graph: an administrator may move a request from any
// status to any other. Only enum membership is validated.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusInProgress RequestStatus = "In Progress"
	RequestStatusCompleted  RequestStatus = "Completed"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusCompleted:
		return true
	}
	return false
}

// ServiceType enumerates the services offered on the intake form.
type ServiceType string

const (
	ServiceTypeComputerRepair ServiceType = "Computer Repair"
	ServiceTypePrinterRepair  ServiceType = "Printer Repair"
	ServiceTypeCCTVRepair     ServiceType = "CCTV Repair"
	ServiceTypeNetworking     ServiceType = "Networking"
	ServiceTypeOther          ServiceType = "Other Services"
)

// ValidServiceType reports whether t is a member of the service enumeration.
func ValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceTypeComputerRepair, ServiceTypePrinterRepair, ServiceTypeCCTVRepair,
		ServiceTypeNetworking, ServiceTypeOther:
		return true
	}
	return false
}

// Urgency enumerates how quickly the customer needs the work done.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ValidUrgency reports whether u is a member of the urgency enumeration.
func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// ServiceRequest is the aggregate for one customer-submitted repair job.
type ServiceRequest struct {
	ID            string
	UserID        *string
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	ServiceType   ServiceType
	CustomService string
	Description   string
	Urgency       Urgency
	PreferredDate string
	Status        RequestStatus

	// Post-intake fields, set by an administrator after diagnosis.
	EstimatedPrice          *float64
	EstimatedCompletionTime *string
	DiagnosedIssue          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestEstimatesPatch enumerates the post-intake fields an administrator
// may set. Nil members are left untouched.
type RequestEstimatesPatch struct {
	EstimatedPrice          *float64
	EstimatedCompletionTime *string
	DiagnosedIssue          *string
}

// Empty reports whether the patch carries no changes.
func (p RequestEstimatesPatch) Empty() bool {
	return p.EstimatedPrice == nil && p.EstimatedCompletionTime == nil && p.DiagnosedIssue == nil
}
