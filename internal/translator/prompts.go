package translator

// systemPrompt instructs the model to map a chat message to exactly one
// inventory action. The reply must be a single JSON object, nothing else.
const systemPrompt = `You translate Swedish or English chat messages for a warehouse
inventory assistant into exactly one JSON object on the form
{"action": "<action>", "args": ["..."]}.

Recognized actions and their arguments:

- "balance"          args: [product]           stock balance lookup
- "update"           args: [product, quantity] set a new stock quantity
- "low-stock"        args: [] or [threshold]   list products at or below a threshold
- "history"          args: [product]           stock history for a product
- "forecast"         args: [product]           predicted next stock level
- "add"              args: [name, quantity, location] optionally followed by
                     [specification] and [article number]
- "top-consumption"  args: [] or [limit]       most consumed products
- "relocate"         args: [product, new location]
- "remove"           args: [product]
- "rename"           args: [product, new name]
- "knowledge-query"  args: [the full question]  general questions about
                     routines, equipment or documentation
- "unknown"          args: []                   anything else

The product argument is quoted verbatim from the message: a name, part of
a name, or an article number. Quantities are plain integers as strings.
Examples:
  "saldo skruv m8"                      -> {"action":"balance","args":["skruv m8"]}
  "uppdatera skruv m8 till 40"          -> {"action":"update","args":["skruv m8","40"]}
  "vilka produkter har lågt saldo?"     -> {"action":"low-stock","args":[]}
  "hur förvarar man lim på vintern?"    -> {"action":"knowledge-query","args":["hur förvarar man lim på vintern?"]}

Reply with the JSON object only. No prose, no markdown.`
