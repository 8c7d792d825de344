// Package polaris is a scroll-driven landing page for [Ebitengine].
//
// A [Page] starts behind a loading overlay: a field of particles that morphs
// between a circle, a spiral, a wave and a grid while the model and the
// image sequence load in the background. When the overlay slides away the
// page mounts. The hero text reveals itself with a spring, the 3D model
// plays a one-shot entrance, and from then on everything follows the scroll
// position.
//
// # Quick start
//
// [Run] opens a window and drives the page from the mouse wheel and
// keyboard:
//
//	page := polaris.NewPage(ctx, polaris.DefaultPageConfig(), 1280, 800, polaris.PageOptions{
//		Renderer: polaris.NewEbitenRenderer(1280, 800),
//	})
//	if err := polaris.Run(page, polaris.RunConfig{Title: "Polaris"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, call [Page.Update] with the frame delta and
// [Page.Draw] from your own [ebiten.Game], and feed it [Page.ScrollBy] and
// [Page.Resize].
//
// # Time
//
// Every component advances by an explicit [time.Duration] passed to its
// Update method. Nothing reads the wall clock, so a page can be stepped
// deterministically in tests or headlessly (see cmd/polaris-inspect).
// Delayed work such as the overlay exit and the entrance trigger runs on the
// page's [Scheduler], which fires callbacks in due order inside Update.
//
// # Scroll motion
//
// The [SceneController] runs in two layers. The entrance eases rotation,
// camera distance and opacity over a fixed duration. Once it completes the
// continuous layer takes over: scroll progress maps to [SceneTargets], and
// each tick the model and camera move a fixed fraction of the way toward
// them (see [Approach]).
//
// The [FrameScrubber] maps the scroll offset inside a tall container to an
// image sequence frame, pinning the frame view while the container spans the
// viewport.
//
// # Scripted runs
//
// A JSON script loaded with [LoadTestScript] can drive a [Host] instead of
// the user, injecting scrolls and resizes and capturing screenshots:
//
//	[
//	  {"action": "wait", "frames": 400},
//	  {"action": "scroll", "dy": 1200, "frames": 30},
//	  {"action": "screenshot", "label": "pinned"}
//	]
//
// # Easing
//
// The ease subpackage holds the normalized easing curves used for
// scroll-driven interpolation. One-shot tweens, such as the overlay exit,
// use [gween] directly with the same curves.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package polaris
