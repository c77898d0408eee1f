package domain

import "time"

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in-progress"
	ComplaintCompleted  ComplaintStatus = "completed"
)

func ParseComplaintStatus(s string) (ComplaintStatus, bool) {
	switch ComplaintStatus(s) {
	case ComplaintPending, ComplaintInProgress, ComplaintCompleted:
		return ComplaintStatus(s), true
	default:
		return "", false
	}
}

// Complaint fields other than id, status and created_at are nullable:
// the public form submits whatever it has and absence is stored as NULL.
type Complaint struct {
	ID            int64           `json:"id"`
	Fullname      *string         `json:"fullname"`
	Phone         *string         `json:"phone"`
	ComplaintType *string         `json:"complaint_type"`
	Description   *string         `json:"description"`
	Urgency       *string         `json:"urgency"`
	Latitude      *string         `json:"latitude"`
	Longitude     *string         `json:"longitude"`
	ImageURL      *string         `json:"image_url"`
	Status        ComplaintStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PublicComplaint is the citizen-facing view: the phone number is
// redacted, the status is kept so a case stays trackable.
type PublicComplaint struct {
	ID            int64           `json:"id"`
	Fullname      *string         `json:"fullname"`
	ComplaintType *string         `json:"complaint_type"`
	Description   *string         `json:"description"`
	Urgency       *string         `json:"urgency"`
	Latitude      *string         `json:"latitude"`
	Longitude     *string         `json:"longitude"`
	ImageURL      *string         `json:"image_url"`
	Status        ComplaintStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (c *Complaint) ToPublic() *PublicComplaint {
	return &PublicComplaint{
		ID:            c.ID,
		Fullname:      c.Fullname,
		ComplaintType: c.ComplaintType,
		Description:   c.Description,
		Urgency:       c.Urgency,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		ImageURL:      c.ImageURL,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}

// SubmitComplaintRequest carries the multipart form fields. A caller
// cannot set the status: every new complaint starts pending.
type SubmitComplaintRequest struct {
	Fullname      *string
	Phone         *string
	ComplaintType *string
	Description   *string
	Urgency       *string
	Latitude      *string
	Longitude     *string
	ImageURL      *string
}

type SubmitComplaintResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	ImageURL *string `json:"image_url"`
}

type UpdateStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	Message   string `json:"message"`
	ID        int64  `json:"id"`
	NewStatus string `json:"new_status"`
}
