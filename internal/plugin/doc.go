// Package plugin is the build-pipeline integration of faviconbuilder.
//
// A host build creates one Plugin per configuration, calls Compile once per
// build, passes each HTML page through InjectHTML and calls Finalize when the
// build emits its assets:
//
//	p, err := plugin.New(opts, plugin.WithRenderer(render.NewBasic()))
//	comp, err := p.Compile(ctx, host)
//	page = p.InjectHTML(page, plugin.PageOptions{})
//	err = p.Finalize(ctx, host)
package plugin
