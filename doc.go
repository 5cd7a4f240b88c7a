// Package hxstyle provides styled components for server-rendered Go
// applications built on templ.
//
// A styled component pairs a render target (a markup element or another
// component) with a static style. At render time it takes a bag of named
// props and routes each one: style shorthands (width, color, padding) are
// compiled into a CSS class, pseudo shorthands (_hover, _focus) into a
// scoped class variant, attribute names valid for the target are
// forwarded, and everything else is dropped.
//
// # Core Concepts
//
// Props are an ordered map of tagged values (lib/props). Only string and
// number values take part in style compilation; any other value is passed
// through untouched, even under a style name.
//
//	Box := hxstyle.New(hxstyle.Element("div"), sheet.S("padding", 20))
//
//	Box.With(
//	    "width", 100,          // compiled: width:100px
//	    "_hover", "red",       // compiled: &:hover{color:red}
//	    "onClick", handler,    // forwarded, dropped at render (not text)
//	    "seamless", true,      // dropped: never valid on elements
//	    "children", "Hello",
//	)
//
// # Routing
//
// The Router checks passthrough props against per-element rules, in
// order: context allow-sets (width only on sized and graphics elements,
// loading only on img and iframe), interaction-state flags, the disallow
// list, then graphics-only names. Survivors must also be valid attribute
// names (lib/attr). Custom components only get the attribute name check,
// and only when routed explicitly; Styled hands them every passthrough
// prop.
//
// # Class Composition
//
// Classes are composed in cascade order:
//
//	static < style shorthands < pseudo shorthands < className < css
//
// The default compiler (lib/sheet) merges registered classes in that
// order into a single class, so later declarations win regardless of
// rule order in the stylesheet.
//
// # Tables
//
// Style and pseudo shorthand names, unitless properties and the attribute
// rules are embedded YAML (lib/tables), loaded once and validated for
// conflicts. A conflicting table is a build defect and panics on first
// use.
//
// # Serving
//
// A Registry serves the stylesheet and component previews:
//
//	reg := hxstyle.NewRegistry(hxstyle.DefaultSheet(), logger)
//	reg.Add(Box, Heading)
//	http.Handle("/_s/", http.StripPrefix("/_s", reg.Handler()))
//
// Document inlines only the rules a page uses; Snapshot and Hydrate move
// a compiled sheet between processes.
package hxstyle
