package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"ganboo/internal/models"
)

type resultView models.RelationshipResult

func (r resultView) String() string {
	return fmt.Sprintf("user %d -> user %d: %s", r.UserID, r.OtherID, r.Status)
}

type statusView struct {
	UserID  uint                      `json:"user_id"`
	OtherID uint                      `json:"other_id"`
	Status  models.RelationshipStatus `json:"status"`
}

func (s statusView) String() string {
	return string(s.Status)
}

type profileView struct {
	models.UserSummary
	Friends  int `json:"friends"`
	Incoming int `json:"incoming_requests"`
	Outgoing int `json:"outgoing_requests"`
}

func newProfileView(u *models.User) profileView {
	return profileView{
		UserSummary: u.Summary(),
		Friends:     len(u.Friends),
		Incoming:    len(u.IncomingRequests),
		Outgoing:    len(u.OutgoingRequests),
	}
}

func (p profileView) String() string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "ID\t%d\n", p.ID)
		fmt.Fprintf(w, "Name\t%s\n", p.DisplayName)
		fmt.Fprintf(w, "Code\t%s\n", p.PublicCode)
		fmt.Fprintf(w, "Level\t%d\n", p.Level)
		fmt.Fprintf(w, "Friends\t%d\n", p.Friends)
		fmt.Fprintf(w, "Pending\t%d in / %d out\n", p.Incoming, p.Outgoing)
	})
}

type summaryList []models.UserSummary

func (l summaryList) String() string {
	if len(l) == 0 {
		return "(none)"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tLEVEL\tCODE")
		for _, u := range l {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", u.ID, u.DisplayName, u.Level, u.PublicCode)
		}
	})
}

type candidateList []models.CandidateView

func (l candidateList) String() string {
	if len(l) == 0 {
		return "No users found"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tCODE\tFRIEND\tREQUEST")
		for _, c := range l {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", c.ID, c.DisplayName, c.PublicCode, c.IsFriend, c.RequestStatus)
		}
	})
}

type pendingList []models.PendingRequestView

func (l pendingList) String() string {
	if len(l) == 0 {
		return "(none)"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "FROM\tNAME\tSENT")
		for _, p := range l {
			fmt.Fprintf(w, "%d\t%s\t%s\n", p.From.ID, p.From.DisplayName, p.SentAt.Format(time.RFC3339))
		}
	})
}

type tokenView struct {
	UserID    uint      `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (t tokenView) String() string {
	return t.Token
}

type seedReport struct {
	DemoUsers   bool `json:"demo_users"`
	Users       int  `json:"users"`
	Requests    int  `json:"requests"`
	Friendships int  `json:"friendships"`
}

func (r seedReport) String() string {
	return fmt.Sprintf("created %d users, %d pending requests, %d friendships", r.Users, r.Requests, r.Friendships)
}

func table(fill func(w *tabwriter.Writer)) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fill(w)
	_ = w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
