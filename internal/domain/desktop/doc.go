/*
Package desktop composes the desktop session into one interactive surface.

A Shell owns one simulated desktop: its window manager, session
controller, icon layout, preferences, notes, calendar and notification
bus. It translates user gestures (icon double-click, taskbar click, start
menu or search result activation) into calls on those components and
renders a Snapshot from their current state. It holds no state of its
own beyond the viewport and the mounted app views.

A Hub hosts many shells keyed by desktop id, one per browser client.

# Interactivity

Every gesture that reaches desktop content requires the session to be
running; otherwise ErrNotInteractive is returned. Session triggers (boot,
unlock, lock, shutdown, power on) are always accepted and fail with
ErrInvalidTransition when the current state does not allow them.

# App views

Apps are rendered by AppView implementations registered per component key
in a Views table. Windows whose component has no view render the
"App not found" placeholder instead of failing.
*/
package desktop
