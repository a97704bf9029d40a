package web

import (
	"log"
	"net/http"
	"time"

	"Perch/internal/core/accounts"
	"Perch/internal/core/calendar"
	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
)

// queueLimit caps the rows on the queue page
const queueLimit = 200

// Handlers serves the HTML pages
type Handlers struct {
	templates *Templates
	service   scheduler.Service
	location  *time.Location
	now       func() time.Time
}

// NewHandlers creates page handlers; loc is the zone pages display times in
func NewHandlers(templates *Templates, service scheduler.Service, loc *time.Location) *Handlers {
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		templates: templates,
		service:   service,
		location:  loc,
		now:       time.Now,
	}
}

// PageData is shared by every page: title and account picker
type PageData struct {
	Title     string
	AccountID string
	Accounts  []*accounts.Account
}

// QueueItem is one row of the queue table
type QueueItem struct {
	ID        string
	When      string
	Account   string
	Text      string
	Status    posts.Status
	MediaURLs []string
	Tags      []string
}

// QueuePageData is the data for queue.html
type QueuePageData struct {
	PageData
	Posts []QueueItem
}

// CalendarPageData is the data for calendar.html
type CalendarPageData struct {
	PageData
	Month calendar.Month
}

// QueueHandler handles GET /
func (h *Handlers) QueueHandler(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, "Queue")
	if !ok {
		return
	}

	list, err := h.service.Timeline(r.Context(), posts.ListPostsRequest{AccountID: page.AccountID, Limit: queueLimit})
	if err != nil {
		h.fail(w, "list posts", err)
		return
	}

	labels := make(map[string]string, len(page.Accounts))
	for _, a := range page.Accounts {
		labels[a.ID] = a.HandleTag
	}

	data := QueuePageData{PageData: page, Posts: make([]QueueItem, 0, len(list))}
	for _, p := range list {
		data.Posts = append(data.Posts, QueueItem{
			ID:        p.ID,
			When:      p.ScheduledAt.In(h.location).Format("Mon 2 Jan 2006 15:04"),
			Account:   labels[p.AccountID],
			Text:      p.Text,
			Status:    p.Status,
			MediaURLs: p.MediaURLs,
			Tags:      p.Tags,
		})
	}

	if err := h.templates.Render(w, "queue.html", data); err != nil {
		log.Printf("Failed to render queue page: %v", err)
	}
}

// CalendarHandler handles GET /calendar?account=&month=YYYY-MM
func (h *Handlers) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	month, err := calendar.ParseMonth(r.URL.Query().Get("month"), h.now(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, ok := h.page(w, r, month.Format("January 2006"))
	if !ok {
		return
	}

	start, end := calendar.GridRange(month)
	list, err := h.service.Timeline(r.Context(), posts.ListPostsRequest{
		AccountID: page.AccountID,
		From:      &start,
		To:        &end,
	})
	if err != nil {
		h.fail(w, "list posts", err)
		return
	}

	data := CalendarPageData{PageData: page, Month: calendar.BuildMonth(month, list, h.now())}
	if err := h.templates.Render(w, "calendar.html", data); err != nil {
		log.Printf("Failed to render calendar page: %v", err)
	}
}

func (h *Handlers) page(w http.ResponseWriter, r *http.Request, title string) (PageData, bool) {
	list, err := h.service.Accounts(r.Context())
	if err != nil {
		h.fail(w, "list accounts", err)
		return PageData{}, false
	}
	return PageData{
		Title:     title,
		AccountID: r.URL.Query().Get("account"),
		Accounts:  list,
	}, true
}

func (h *Handlers) fail(w http.ResponseWriter, op string, err error) {
	log.Printf("Failed to %s for web page: %v", op, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
