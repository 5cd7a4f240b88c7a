package pages

import (
	"slices"

	"github.com/a-h/templ"
)

// Page is a named demo page.
type Page struct {
	Name  string
	Title string
	Body  func() templ.Component
}

var all = []Page{
	{Name: "index", Title: "Home", Body: Index},
	{Name: "speed-build", Title: "Speed build", Body: SpeedBuild},
}

// All returns the demo pages in menu order.
func All() []Page { return slices.Clone(all) }

// Lookup finds a page by name.
func Lookup(name string) (Page, bool) {
	for _, p := range all {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}

// Index renders the header as an h2 with an extra margin.
func Index() templ.Component {
	return el("div", "children", Header.With("as", "h2", "margin", 20, "children", "Hello"))
}

// SpeedBuild is a video watch page laid out with stacks only.
func SpeedBuild() templ.Component {
	return VStack.With("css", "gap: 8px", "children", group(
		Navbar(),
		Container.With("children", AppBody.With("children", group(
			VStack.With("children", group(
				AspectRatio(),
				headerData(),
				metaData(),
				Divider(),
				VStack.With("css", "gap: 32px", "children", group(
					channel(),
					Divider(),
					HStack.With("children", group(
						StackItem.With("children", Text.With("children", "40,876 Comments")),
						Spacer.With("children", HStack.With("children", Text.With("children", "Sort by"))),
					)),
				)),
				Placeholder.With("height", 48, "aria-busy", true),
				HStack.With("children", group(
					Avatar(32),
					Spacer.With("children", Text.With("opacity", 0.6, "children", "Add comment...")),
				)),
			)),
			VStack.With("css", "gap: 16px", "children", sidebar(10)),
		))),
	))
}

func headerData() templ.Component {
	return VStack.With("css", "gap: 12px", "children", group(
		Text.With("fontSize", 12, "children", "#TAEYEON #Killingvoice"),
		Heading.With("fontSize", 18, "children",
			"TAEYEON Killing Voice live: I, My Love, If, 11:11, Blue, Time Lapse, Weekend, Spark, Four Seasons, Gravity, INVU"),
	))
}

func metaData() templ.Component {
	stat := func(glyph, label string) templ.Component {
		return StackItem.With("children", HStack.With("children", group(
			Icon(glyph, nil),
			Text.With("fontWeight", "bold", "children", label),
		)))
	}
	return HStack.With("justifyContent", "flex-start", "css", "gap: 12px", "children", group(
		StackItem.With("children", Text.With("opacity", 0.6, "children", "19,972,132")),
		stat("👍", "589K"),
		stat("👎", "DISLIKE"),
		stat("📲", "SHARE"),
		stat("⬇️", "DOWNLOAD"),
		stat("✂️", "CLIP"),
	))
}

func channel() templ.Component {
	return HStack.With("alignItems", "flex-start", "children", group(
		Avatar(32),
		Spacer.With("children", VStack.With("children", group(
			VStack.With("children", group(
				Text.With("children", group(text("dingo music / "), el("strong", "children", "dingo music"))),
				Text.With("opacity", 0.6, "fontSize", 12, "children", "3.7M subscribers"),
			)),
			Text.With("children", group(
				text("This week's Killing Voice will make you happy"),
				el("br"),
				text("Get ready before you listen"),
			)),
			// size is not an attribute of div and is dropped.
			Text.With("size", 11, "opacity", 0.6, "children", "SHOW MORE"),
		))),
		StackItem.With("children", Button("SUBSCRIBE")),
	))
}

func sidebarVideo() templ.Component {
	return HStack.With("alignItems", "flex-start", "children", group(
		StackItem.With("width", "120px", "children", AspectRatio()),
		Spacer.With("children", VStack.With("css", "gap: 0", "children", group(
			Text.With("fontSize", 12, "children", "MeloMance Killing Voice live: Greeting, Fairy Tale, Kiss"),
			Text.With("fontSize", 10, "opacity", 0.6, "children", "dingo music"),
			Text.With("fontSize", 10, "opacity", 0.6, "children", "1.2M views"),
		))),
	))
}

func sidebar(n int) templ.Component {
	videos := make([]templ.Component, n)
	for i := range videos {
		videos[i] = sidebarVideo()
	}
	return group(videos...)
}
