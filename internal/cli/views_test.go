package cli

import (
	"testing"
	"time"

	"ganboo/internal/models"

	"github.com/sebdah/goldie/v2"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

var (
	ming = models.UserSummary{ID: 2, DisplayName: "Xiao Ming", Level: 4, PublicCode: "GANBOO-MING88"}
	mei  = models.UserSummary{ID: 3, DisplayName: "Xiao Mei", Level: 6, PublicCode: "GANBOO-MEI99"}
)

func TestViews_Golden(t *testing.T) {
	g := newGolden(t)

	g.Assert(t, "summary_list", []byte(summaryList{ming, mei}.String()))

	g.Assert(t, "candidate_list", []byte(candidateList{
		{UserSummary: ming, RequestStatus: models.RequestStatusSent},
		{UserSummary: mei, IsFriend: true, RequestStatus: models.RequestStatusNone},
	}.String()))

	g.Assert(t, "pending_list", []byte(pendingList{
		{From: models.UserSummary{ID: 1, DisplayName: "Me"}, SentAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
	}.String()))

	g.Assert(t, "profile", []byte(profileView{UserSummary: ming, Friends: 1, Outgoing: 2}.String()))
}

func TestViews_Empty(t *testing.T) {
	g := newGolden(t)
	g.Assert(t, "empty_lists", []byte(summaryList{}.String()+"\n"+pendingList{}.String()+"\n"+candidateList{}.String()))
}
