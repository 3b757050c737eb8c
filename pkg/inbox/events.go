package inbox

import ws "inbox-srv/internal/websocket"

// eventAliases maps legacy event names to their canonical kind. The alias is
// resolved at the channel boundary so the rest of the client only ever sees
// canonical kinds.
var eventAliases = map[ws.EventType]ws.EventType{
	ws.EventNotificationNewLegacy: ws.EventNotificationNew,
}

// canonicalEvent resolves t through the alias table.
func canonicalEvent(t ws.EventType) ws.EventType {
	if canonical, ok := eventAliases[t]; ok {
		return canonical
	}
	return t
}
