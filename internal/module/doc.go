// Package module provides the scaffolding every page module builds on.
//
// A module embeds *Base, which gives it a scope identity, a sequence
// number on its page and shortcuts to bind and unbind events. The
// lifecycle methods a module must provide are interfaces, so a missing
// method is a compile error rather than a runtime failure:
//
//	type Menu struct {
//		*module.Base
//		list *dom.Element
//	}
//
//	func (m *Menu) InitVariables(ctx context.Context) error { ... }
//	func (m *Menu) InitEvents(ctx context.Context) error {
//		if _, err := m.Bind(ctx, m.list, "click", onClick, binding.WithSelector("li")); err != nil {
//			return err
//		}
//		return m.InitBreakpoints(ctx, m)
//	}
//
// Modules named in markup through a data-module attribute are mounted by
// a Registry, which fails fast on names with no registered factory.
package module
