// Package resolve turns import specifiers into canonical file identities.
//
// A canonical identity is an absolute, cleaned, symlink-free path: two
// different spellings of the same file ("./b", "../src/b.ts", a symlink to
// b.ts) resolve to the same string, which is what the walker deduplicates on.
//
// # Resolution Policy
//
// Only relative ("./", "../", ".", "..") and absolute ("/") specifiers are
// resolved. Bare specifiers ("react", "@scope/pkg") would need package-manager
// lookup and are rejected with [ErrBareSpecifier].
//
// For a specifier s imported from file f, the candidate base is
// filepath.Join(filepath.Dir(f), s) and candidates are tried in this order:
//
//  1. base itself, if it is a regular file
//  2. base + ext for each configured extension (default [DefaultExtensions])
//  3. if base ends in .js/.jsx/.mjs/.cjs, the TypeScript source that compiles
//     to it (.ts/.tsx/.mts/.cts), as TypeScript's ESM mode requires
//  4. base/index + ext for each configured extension
//
// The first candidate that exists wins. It must be openable for reading,
// otherwise resolution fails.
//
// # Caching
//
// A [Resolver] memoizes successful candidate lookups in a bounded LRU, so a
// module imported from many files is stat'ed once. Failed lookups are never
// cached.
package resolve
