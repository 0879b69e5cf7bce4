package app

// maxJumps bounds the jump list; the oldest positions fall off first.
const maxJumps = 100

// JumpList records the pages visited by jumps (goto, first/last page,
// bookmarks) so they can be walked back and forth like vim's Ctrl-O/Ctrl-I.
// Plain paging only moves the current position.
type JumpList struct {
	pages []int
	pos   int // index of the current page in pages
}

// NewJumpList creates an empty jump list.
func NewJumpList() *JumpList {
	return &JumpList{pos: -1}
}

// Reset starts a new list at page, as when a document is opened.
func (j *JumpList) Reset(page int) {
	j.pages = []int{page}
	j.pos = 0
}

// Push records a jump to page, dropping any forward entries.
func (j *JumpList) Push(page int) {
	if j.pos < len(j.pages)-1 {
		j.pages = j.pages[:j.pos+1]
	}
	if j.pos >= 0 && j.pages[j.pos] == page {
		return
	}
	j.pages = append(j.pages, page)
	if len(j.pages) > maxJumps {
		j.pages = j.pages[len(j.pages)-maxJumps:]
	}
	j.pos = len(j.pages) - 1
}

// SetCurrent updates the page at the current position.
func (j *JumpList) SetCurrent(page int) {
	if j.pos >= 0 {
		j.pages[j.pos] = page
	}
}

// Back moves one jump back. Returns the page and true if possible.
func (j *JumpList) Back() (int, bool) {
	if j.pos <= 0 {
		return 0, false
	}
	j.pos--
	return j.pages[j.pos], true
}

// Forward moves one jump forward. Returns the page and true if possible.
func (j *JumpList) Forward() (int, bool) {
	if j.pos >= len(j.pages)-1 {
		return 0, false
	}
	j.pos++
	return j.pages[j.pos], true
}

// Len returns the number of recorded positions.
func (j *JumpList) Len() int {
	return len(j.pages)
}

// Clear forgets every position.
func (j *JumpList) Clear() {
	j.pages = nil
	j.pos = -1
}
