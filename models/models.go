package models

// Project is a construction project as returned by the backend.
type Project struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Client      string `json:"client"`
	SiteAddress string `json:"siteAddress"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status"`
	Archived    bool   `json:"archived"`
}

// ProjectDraft carries the fields a user can set when creating or
// updating a project. Empty optional fields are omitted from the payload.
type ProjectDraft struct {
	Name        string `json:"name"`
	Client      string `json:"client"`
	SiteAddress string `json:"siteAddress"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status"`
}

// Folder groups daily logs inside a project. The backend does not
// enforce unique names, and neither do we.
type Folder struct {
	ID        string `json:"_id"`
	Project   string `json:"project"`
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// Weather captures the site conditions recorded with a log.
type Weather struct {
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// DailyLog is one dated site record. Claim-related fields are optional
// and only populated when the log flags a potential claim.
type DailyLog struct {
	ID             string   `json:"_id"`
	Project        string   `json:"project"`
	Folder         string   `json:"folder,omitempty"`
	Date           string   `json:"date"`
	Weather        *Weather `json:"weather,omitempty"`
	SiteArea       string   `json:"siteArea"`
	ActivityType   string   `json:"activityType"`
	Summary        string   `json:"summary"`
	IssuesRisks    string   `json:"issuesRisks,omitempty"`
	NextSteps      string   `json:"nextSteps,omitempty"`
	PotentialClaim bool     `json:"potentialClaim,omitempty"`
	DelayCause     string   `json:"delayCause,omitempty"`
	InstructionRef string   `json:"instructionRef,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	CostNote       string   `json:"costNote,omitempty"`
}

// LogDraft is the create/update payload for a daily log. ActivityType is
// expected to be normalized (see NormalizeActivityType) before submission.
type LogDraft struct {
	Date         string   `json:"date"`
	Weather      *Weather `json:"weather,omitempty"`
	SiteArea     string   `json:"siteArea"`
	ActivityType string   `json:"activityType"`
	Folder       string   `json:"folder,omitempty"`
	Summary      string   `json:"summary"`
	IssuesRisks  string   `json:"issuesRisks,omitempty"`
	NextSteps    string   `json:"nextSteps,omitempty"`
}

// Comment on an attachment. The backend keeps comments ordered by creation.
type Comment struct {
	Text       string `json:"text"`
	AuthorName string `json:"authorName,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Attachment is a file attached to a daily log. The backend historically
// served two field spellings (fileName/fileType vs originalName/mimeType),
// so both are kept and the accessor methods pick whichever is set.
type Attachment struct {
	ID           string    `json:"_id"`
	DailyLog     string    `json:"dailyLog"`
	FileURL      string    `json:"fileUrl,omitempty"`
	FileName     string    `json:"fileName,omitempty"`
	FileType     string    `json:"fileType,omitempty"`
	FileSize     int64     `json:"fileSize,omitempty"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadedBy   string    `json:"uploadedBy,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	UploadedAt   string    `json:"uploadedAt,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
}

// DisplayName returns the best available human-readable file name.
func (a Attachment) DisplayName() string {
	if a.OriginalName != "" {
		return a.OriginalName
	}
	if a.FileName != "" {
		return a.FileName
	}
	return a.Filename
}

// ContentType returns whichever mime field the backend populated.
func (a Attachment) ContentType() string {
	if a.MimeType != "" {
		return a.MimeType
	}
	return a.FileType
}

// AuthUser is the authenticated user's profile.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
