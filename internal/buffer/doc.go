// Package buffer holds the fixed-length character buffer shown on the index page.
//
// Buffer is a value type of exactly Length character codes. Store owns the
// single shared Buffer and serialises replacements behind a mutex; readers get
// copies via Snapshot, so a render never sees a half-written buffer.
package buffer
