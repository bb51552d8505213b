package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/easy-qfnu/portal-client/pkg/portal"
	"github.com/easy-qfnu/portal-client/pkg/present"
)

func (r *Root) communityCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "questions",
			Usage:     "Search the freshman quiz bank",
			ArgsUsage: "<keyword>",
			Action:    r.questions,
		},
		{
			Name:  "recommend",
			Usage: "Browse or submit course recommendations",
			Commands: []*cli.Command{
				{
					Name:      "query",
					Usage:     "Search recommendations",
					ArgsUsage: "[keyword]",
					Action:    r.recommendQuery,
				},
				{
					Name:  "submit",
					Usage: "Submit a recommendation",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "course", Usage: "course name", Required: true},
						&cli.StringFlag{Name: "teacher", Usage: "teacher name", Required: true},
						&cli.StringFlag{Name: "reason", Usage: "why the course is worth taking", Required: true},
						&cli.StringFlag{Name: "nickname", Usage: "shown as the recommender"},
						&cli.StringFlag{Name: "campus", Usage: "campus name", Required: true},
						&cli.StringFlag{Name: "year", Usage: "academic year taken", Required: true},
					},
					Action: r.recommendSubmit,
				},
			},
		},
		{
			Name:   "announcements",
			Usage:  "Show site announcements",
			Action: r.announcements,
		},
	}
}

func (r *Root) questions(ctx context.Context, c *cli.Command) error {
	keyword, err := requireArg(c, "keyword")
	if err != nil {
		return err
	}
	list, err := r.rt.API.SearchQuestions(ctx, keyword)
	if err != nil {
		return err
	}
	if list == nil {
		list = []portal.Question{}
	}
	return r.writeJSON(c, list)
}

func (r *Root) recommendQuery(ctx context.Context, c *cli.Command) error {
	list, err := r.rt.API.QueryRecommendations(ctx, strings.TrimSpace(c.Args().First()))
	if err != nil {
		return err
	}
	if list == nil {
		list = []portal.Recommendation{}
	}
	return r.writeJSON(c, list)
}

func (r *Root) recommendSubmit(ctx context.Context, c *cli.Command) error {
	resp, err := r.rt.API.Recommend(ctx, portal.RecommendRequest{
		CourseName:           strings.TrimSpace(c.String("course")),
		TeacherName:          strings.TrimSpace(c.String("teacher")),
		RecommendationReason: strings.TrimSpace(c.String("reason")),
		RecommenderNickname:  strings.TrimSpace(c.String("nickname")),
		Campus:               strings.TrimSpace(c.String("campus")),
		RecommendationYear:   strings.TrimSpace(c.String("year")),
	})
	if err != nil {
		return err
	}
	r.rt.Toasts.Success(msgRecommended)
	return r.writeJSON(c, resp)
}

type announcementOutput struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (r *Root) announcements(ctx context.Context, c *cli.Command) error {
	list, err := r.rt.API.Announcements(ctx)
	if err != nil {
		return err
	}
	out := make([]announcementOutput, 0, len(list))
	for _, a := range list {
		out = append(out, announcementOutput{
			ID:      a.ID,
			Title:   a.Title,
			Type:    a.Type,
			Content: present.PlainText(a.Content),
		})
	}
	return r.writeJSON(c, out)
}
