package handler

type createTimelogRequest struct {
	UserID      string `json:"userId"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Minutes     *int   `json:"minutes"`
}

// updateTimelogRequest uses pointers throughout: only fields present in the
// payload are applied.
type updateTimelogRequest struct {
	UserID      *string `json:"userId"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Minutes     *int    `json:"minutes"`
}

// timelogResponse is the fixed output schema for every timelog. Date is the
// DDMMMYYYY wire string.
type timelogResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Minutes     int    `json:"minutes"`
	UserID      string `json:"userId"`
	UserEmail   string `json:"userEmail"`
}

type timelogsResponse struct {
	NumTimelogs int               `json:"numTimelogs"`
	Timelogs    []timelogResponse `json:"timelogs"`
}

// exportData is the template context for the rendered export document.
type exportData struct {
	FromDateStr      string
	ToDateStr        string
	GeneratedDateStr string
	SingleUserEmail  string
	ExporterEmail    string
	Groups           []exportGroup
}

type exportGroup struct {
	DateStr      string
	TotalTimeStr string
	UserEmail    string
	Notes        []string
}
