// Package sicontent uploads game packages to a content service that
// addresses them by content.
//
// A package is keyed by its name and the base64 SHA-1 of its bytes. Before
// sending anything the client asks the service whether that digest is
// already stored, so identical packages are transferred once.
//
// Basic usage:
//
//	c, _ := sicontent.New("https://content.example.org")
//
//	key, data, _ := sicontent.ReadPackage("quiz.siq")
//
//	// Upload unless the service already has it
//	res, err := c.UploadIfNotExists(ctx, key, data, func(sent, total int64) {
//	    fmt.Printf("\r%d%%", sent*100/max(total, 1))
//	})
//	fmt.Println(res.URI, res.AlreadyExists)
//
//	// Existence check only
//	uri, ok, err := c.Lookup(ctx, key)
//
// Failures are *Error values; use IsKind to tell network trouble from a
// rejection by the service. A package that is not stored is not an error.
package sicontent
