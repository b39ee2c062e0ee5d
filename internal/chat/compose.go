package chat

import (
	"strings"
	"time"

	perrors "github.com/zhubert/chatter/internal/errors"
)

// Compose builds the records for one send from the composer: the text with
// the first attachment, then one image-only record per further attachment.
// Records are returned oldest first, ready for Insert. Each record is one
// nanosecond newer than the previous so storage order matches list order.
func (c *Conversation) Compose(senderName, body string, attachments []string, now time.Time) ([]Record, error) {
	body = strings.TrimSpace(body)
	if body == "" && len(attachments) == 0 {
		return nil, perrors.EmptyMessage()
	}

	var first string
	if len(attachments) > 0 {
		first = attachments[0]
	}

	records := []Record{NewRecord(c.localUserID, senderName, body, first, now)}
	for i, ref := range attachments[min(1, len(attachments)):] {
		records = append(records, NewRecord(c.localUserID, senderName, "", ref, now.Add(time.Duration(i+1))))
	}
	return records, nil
}
