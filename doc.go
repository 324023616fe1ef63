/*
Package locationhistory decodes location history exports (Records.json) without
loading them in memory.

An export is a single JSON object whose "locations" field holds an array of
location entries, possibly millions of them. Entries are decoded one at a time
and handed to the caller before the next one is read:

	f, err := os.Open("Records.json")
	if err != nil {
		return err
	}
	defer f.Close()

	err = locationhistory.ReadJSONEntries(bufio.NewReader(f), func(e *protocol.Entry) error {
		fmt.Println(e.Timestamp, e.LngLat())
		return nil
	})

The same walk is available in pull form with a Decoder, and over any input
implementing decode.Source.

Entries and their nested structures are validated as they are decoded: unknown
fields, missing required fields, unknown enumeration tokens and malformed
scalars stop decoding with a *decode.Error. Fields of the top-level object
other than "locations" are ignored.
*/
package locationhistory
