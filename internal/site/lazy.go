package site

import "github.com/greenpitch/greenpitch/internal/dom"

// observeImages registers every image with a deferred source.
func (v *View) observeImages() {
	for _, img := range v.doc.FindAll(dom.And(dom.ByTag("img"), dom.HasAttr(AttrDeferredSrc))) {
		v.lazy[img] = struct{}{}
	}
}

// ImageVisible swaps in the real source of an observed image entering the
// viewport. Each image is handled once.
func (v *View) ImageVisible(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.imageVisible(v.doc.GetElementByID(id))
}

func (v *View) imageVisible(img dom.Element) bool {
	if _, ok := v.lazy[img]; !ok {
		return false
	}
	src, ok := img.Attr(AttrDeferredSrc)
	if !ok {
		return false
	}
	img.SetAttr("src", src)
	img.RemoveAttr(AttrDeferredSrc)
	delete(v.lazy, img)
	return true
}

// PendingImages returns how many images still wait for the viewport.
func (v *View) PendingImages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.lazy)
}
