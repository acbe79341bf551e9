// Package build implements the builder/context engine: a Session owns the
// stack of open builders and the stack of location scopes, and each Builder
// accumulates a part, sketch or line result through the combination modes.
//
// Builder scopes are closures:
//
//	part, err := sess.BuildPart(func(p *build.Builder) error {
//		if _, err := primitives.Box(sess, 10, 10, 10); err != nil {
//			return err
//		}
//		_, err := sess.BuildSketch(func(s *build.Builder) error {
//			_, err := primitives.Circle(sess, 2)
//			return err
//		})
//		return err
//	})
//
// On a nil return the builder folds into its parent and closes. On an error
// or panic the builder closes without touching its parent and the error (or
// panic) propagates unchanged.
package build
