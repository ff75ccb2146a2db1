// Package templates renders the HTML pages for the campaign manager.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/plotgod/internal/platform/branding"
	"github.com/louisbranch/plotgod/internal/storage"
)

// ComposePageTitle appends the product name unless the title already is it.
func ComposePageTitle(title string) string {
	if title == "" || title == branding.AppName {
		return branding.AppName
	}
	return title + " | " + branding.AppName
}

func writeStrings(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

// page wraps body markup in the shared document shell.
func page(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := writeStrings(w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			"<title>", templ.EscapeString(ComposePageTitle(title)), "</title>",
			"</head><body>",
		)
		if err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		return writeStrings(w, "</body></html>")
	})
}

// IndexPage renders the landing page with the campaign picker and the
// session prep form. An empty errorMessage hides the error banner.
func IndexPage(campaigns []storage.Campaign, errorMessage string) templ.Component {
	return page(branding.AppName, func(w io.Writer) error {
		if err := writeStrings(w, "<h1>", templ.EscapeString(branding.AppName), "</h1>"); err != nil {
			return err
		}
		if errorMessage != "" {
			err := writeStrings(w, `<p class="error">`, templ.EscapeString(errorMessage), "</p>")
			if err != nil {
				return err
			}
		}
		err := writeStrings(w,
			`<form method="post" action="/generate">`,
			`<label for="campaign_id">Campaign</label>`,
			`<select id="campaign_id" name="campaign_id">`,
			`<option value="">Select a campaign</option>`,
		)
		if err != nil {
			return err
		}
		for _, campaign := range campaigns {
			err := writeStrings(w,
				`<option value="`, strconv.FormatInt(campaign.ID, 10), `">`,
				templ.EscapeString(campaign.Name),
				"</option>",
			)
			if err != nil {
				return err
			}
		}
		return writeStrings(w,
			"</select>",
			`<button type="submit">Generate session prep</button>`,
			"</form>",
		)
	})
}

// SessionPrepPage shows generated prep notes for a campaign. The output
// is rendered verbatim inside a pre block, including any error text the
// generation step produced.
func SessionPrepPage(campaignName, output string) templ.Component {
	return page("Session prep", func(w io.Writer) error {
		return writeStrings(w,
			"<h1>Session prep: ", templ.EscapeString(campaignName), "</h1>",
			"<pre>", templ.EscapeString(output), "</pre>",
			`<p><a href="/">Back to campaigns</a></p>`,
		)
	})
}

// OverviewPage echoes the submitted planning fields back to the player.
// It is a stand-in until the overview grows real rendering.
type OverviewPage struct {
	CampaignID      string
	PartyIDs        string
	NPCIDs          string
	LocationIDs     string
	LastSessionText string
}

// Component renders the overview placeholder.
func (p OverviewPage) Component() templ.Component {
	return page("Overview", func(w io.Writer) error {
		return writeStrings(w,
			"<h1>Overview</h1>",
			"<p><strong>Campaign ID:</strong> ", templ.EscapeString(p.CampaignID), "</p>",
			"<p><strong>Party IDs:</strong> ", templ.EscapeString(p.PartyIDs), "</p>",
			"<p><strong>NPC IDs:</strong> ", templ.EscapeString(p.NPCIDs), "</p>",
			"<p><strong>Location IDs:</strong> ", templ.EscapeString(p.LocationIDs), "</p>",
			"<h2>Last session text</h2>",
			"<pre>", templ.EscapeString(p.LastSessionText), "</pre>",
			`<p><a href="/">Back to campaigns</a></p>`,
		)
	})
}
