// Package imagecache caches encoded images by request key.
//
// Rendering is deterministic, so identical requests produce identical PNG
// bytes. Storage is gg's 16-shard LRU from github.com/gogpu/gg/cache, bounded
// by entry count; images above a per-image size limit are never stored:
//
//	c := imagecache.New(imagecache.Options{MaxEntries: 1024, MaxImageBytes: 256 << 10})
//	png, err := c.GetOrRender(key, render)
//
// A Cache is safe for concurrent use and must not be copied.
package imagecache
